package gallery

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Spok95/art-shop-bot/internal/markup"
)

const galleryHTML = `
<div id="galleryData">
  <div class="photo-data" data-id="p1" data-category="caricaturi" data-title="Nunta" data-description="Live drawing" data-image="img/1.jpg"></div>
  <div class="photo-data" data-id="p2" data-category="portrete" data-title="Bunica" data-description="Creion" data-image="img/2.jpg"></div>
  <div class="photo-data" data-id="p3" data-category="caricaturi" data-title="Echipa" data-description="Digital" data-image="img/3.jpg"></div>
</div>`

func loadPhotos(t *testing.T) []Photo {
	t.Helper()
	doc, err := markup.Parse(strings.NewReader(galleryHTML))
	require.NoError(t, err)
	return LoadPhotos(doc)
}

func TestLoadPhotos(t *testing.T) {
	t.Parallel()

	photos := loadPhotos(t)
	require.Len(t, photos, 3)
	require.Equal(t, Photo{ID: "p2", Category: "portrete", Title: "Bunica", Description: "Creion", Image: "img/2.jpg"}, photos[1])

	doc, err := markup.Parse(strings.NewReader(`<p>no gallery</p>`))
	require.NoError(t, err)
	require.Empty(t, LoadPhotos(doc))
}

func TestViewerFilterAndCategories(t *testing.T) {
	t.Parallel()

	v := NewViewer(loadPhotos(t))
	require.Equal(t, []string{AllCategories, "caricaturi", "portrete"}, v.Categories())
	require.Len(t, v.Photos(), 3)

	v.SetCategory("caricaturi")
	require.Equal(t, "caricaturi", v.Category())
	photos := v.Photos()
	require.Len(t, photos, 2)
	require.Equal(t, "p1", photos[0].ID)
	require.Equal(t, "p3", photos[1].ID)
}

func TestViewerNavigationWraps(t *testing.T) {
	t.Parallel()

	v := NewViewer(loadPhotos(t))
	_, ok := v.Current()
	require.False(t, ok, "lightbox closed")

	require.False(t, v.Open(3))
	require.True(t, v.Open(2))
	require.Equal(t, "3 / 3", v.Counter())

	v.Next()
	p, ok := v.Current()
	require.True(t, ok)
	require.Equal(t, "p1", p.ID)
	require.Equal(t, "1 / 3", v.Counter())

	v.Prev()
	p, _ = v.Current()
	require.Equal(t, "p3", p.ID)

	v.Close()
	require.False(t, v.IsOpen())
}

func TestViewerEmpty(t *testing.T) {
	t.Parallel()

	v := NewViewer(nil)
	require.False(t, v.Open(0))
	v.Next()
	v.Prev()
	_, ok := v.Current()
	require.False(t, ok)
	require.Equal(t, "0 / 0", v.Counter())

	v = NewViewer(loadPhotos(t))
	v.SetCategory("peisaje")
	require.Empty(t, v.Photos())
	require.Equal(t, "0 / 0", v.Counter())
}

func TestSlideshowToggleAndClose(t *testing.T) {
	t.Parallel()

	v := NewViewer(loadPhotos(t))
	require.True(t, v.Open(0))

	var ticks atomic.Int32
	s := NewSlideshow(2*time.Millisecond, func(ctx context.Context) { ticks.Add(1) })
	v.AttachSlideshow(s)
	require.Same(t, s, v.Slideshow())

	require.True(t, s.Toggle(context.Background()))
	require.Eventually(t, func() bool { return ticks.Load() > 0 }, time.Second, time.Millisecond)

	v.Close()
	require.False(t, s.Running())

	require.True(t, s.Toggle(context.Background()))
	require.False(t, s.Toggle(context.Background()))
}
