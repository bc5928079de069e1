package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var reMarkup = regexp.MustCompile(`<(?:[a-zA-Z][a-zA-Z0-9]*|/[a-zA-Z][a-zA-Z0-9]*)(?:\s[^>]*)?/?>`)

const blockSelector = "p, div, li, h1, h2, h3, h4, h5, h6, tr, section, article, header, footer, blockquote"

// CaptionText 將含 HTML 標記的說明轉為純文字，區塊元素之間保留換行；
// 沒有標記時原樣回傳
func CaptionText(caption string) string {
	if !reMarkup.MatchString(caption) {
		return caption
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(caption))
	if err != nil {
		return caption
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
		s.AppendHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
