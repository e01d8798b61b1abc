package order

import (
	"net/url"
	"strings"
)

// WhatsAppURL строит ссылку wa.me с готовым текстом сообщения.
// Пустой текст даёт ссылку на чат без черновика.
func WhatsAppURL(phone, text string) string {
	link := "https://wa.me/" + digits(phone)
	if text == "" {
		return link
	}
	return link + "?text=" + escape(text)
}

// MailtoURL строит mailto-ссылку. Пробелы кодируются как %20: почтовые
// клиенты не понимают "+" в mailto.
func MailtoURL(addr, subject, body string) string {
	return "mailto:" + addr + "?subject=" + escape(subject) + "&body=" + escape(body)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digits(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
