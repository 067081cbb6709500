package ocr

import (
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/joseph-ayodele/tripdocs/internal/entity"
)

var (
	reHTMLDrop  = regexp.MustCompile(`(?is)<(script|style|head)[^>]*>.*?</(script|style|head)>`)
	reHTMLBreak = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/tr|/li|/h[1-6])[^>]*>`)
	reHTMLTag   = regexp.MustCompile(`<[^>]+>`)
)

var wordDecoder = &mime.WordDecoder{CharsetReader: charsetReader}

// extractEmail renders an .eml as header lines plus the best text body:
// text/plain when present, otherwise text/html with tags stripped.
func extractEmail(path string) (entity.TextResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.TextResult{}, fmt.Errorf("open email: %w", err)
	}
	defer func() { _ = f.Close() }()

	msg, err := mail.ReadMessage(f)
	if err != nil {
		return entity.TextResult{}, fmt.Errorf("parse email: %w", err)
	}

	var b strings.Builder
	for _, h := range []string{"Subject", "From", "Date"} {
		v := msg.Header.Get(h)
		if v == "" {
			continue
		}
		if dec, err := wordDecoder.DecodeHeader(v); err == nil {
			v = dec
		}
		b.WriteString(h + ": " + v + "\n")
	}

	var warns []string
	body, err := readBody(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		warns = append(warns, fmt.Sprintf("email body: %v", err))
	}
	b.WriteString("\n")
	b.WriteString(body)

	return entity.TextResult{
		Text:       Normalize(b.String()),
		Pages:      1,
		Method:     "email-text",
		Warnings:   warns,
		Confidence: 1,
	}, nil
}

func readBody(contentType, transferEncoding string, r io.Reader) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType, params = "text/plain", map[string]string{}
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return readMultipart(multipart.NewReader(r, params["boundary"]))
	}

	raw, err := io.ReadAll(decodeTransfer(transferEncoding, r))
	if err != nil {
		return "", err
	}
	text := decodeCharset(params["charset"], raw)
	if mediaType == "text/html" {
		return stripHTML(text), nil
	}
	return text, nil
}

func readMultipart(mr *multipart.Reader) (string, error) {
	var plain, htmlText string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return firstNonEmpty(plain, htmlText), err
		}
		ct := p.Header.Get("Content-Type")
		if ct == "" {
			ct = "text/plain"
		}
		mediaType, _, _ := mime.ParseMediaType(ct)
		if disp, _, _ := mime.ParseMediaType(p.Header.Get("Content-Disposition")); disp == "attachment" {
			continue
		}
		switch {
		case strings.HasPrefix(mediaType, "multipart/"), mediaType == "text/plain", mediaType == "text/html":
			// multipart.Part decodes quoted-printable itself and drops the header
			body, err := readBody(ct, p.Header.Get("Content-Transfer-Encoding"), p)
			if err != nil {
				continue
			}
			switch {
			case mediaType == "text/html" && htmlText == "":
				htmlText = body
			case plain == "":
				plain = body
			}
		}
	}
	return firstNonEmpty(plain, htmlText), nil
}

func decodeTransfer(enc string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	default:
		return r
	}
}

func decodeCharset(charset string, raw []byte) string {
	charset = strings.TrimSpace(charset)
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "us-ascii") {
		return string(raw)
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return string(raw)
	}
	dec, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(dec)
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(input), nil
}

func stripHTML(s string) string {
	s = reHTMLDrop.ReplaceAllString(s, "")
	s = reHTMLBreak.ReplaceAllString(s, "\n")
	s = reHTMLTag.ReplaceAllString(s, " ")
	return html.UnescapeString(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
