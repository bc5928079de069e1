package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

// ErrExtraJSONData 解析後仍有多餘資料
var ErrExtraJSONData = errors.New("unexpected extra JSON data")

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v any) error {
	return decodeJSON(strings.NewReader(data), v, false)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v any) error {
	return decodeJSON(bytes.NewReader(data), v, false)
}

// DecodeJSONStrict 使用統一設定解析 JSON，禁止未知欄位
func DecodeJSONStrict(r io.Reader, v any) error {
	return decodeJSON(r, v, true)
}

func decodeJSON(r io.Reader, v any, disallowUnknown bool) error {
	dec := json.NewDecoder(r)
	if disallowUnknown {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return err
		}
		return ErrExtraJSONData
	}
	return nil
}

var (
	unquotedKeyPattern = regexp.MustCompile(`([{\[,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	codeFencePattern   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
)

// QuoteJSONKeys 將未加雙引號的鍵補上雙引號
func QuoteJSONKeys(raw string) string {
	return unquotedKeyPattern.ReplaceAllString(raw, `$1"$2":`)
}

// ExtractJSONObject 從模型回覆中取出第一個 JSON 物件，去除 markdown 區塊標記
func ExtractJSONObject(content string) (string, bool) {
	if m := codeFencePattern.FindStringSubmatch(content); m != nil {
		content = m[1]
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// ToJSON 將結構體轉換為 JSON 字符串
func ToJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
