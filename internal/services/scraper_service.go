package services

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"tripflow/internal/models/trip_models"
	"tripflow/pkg/utils"
)

const (
	scrapeTimeout   = 20 * time.Second
	maxRawTextRunes = 20000
	maxTips         = 10
	maxHighlights   = 8
	maxImages       = 6
)

// tipSentenceRe picks out advice-flavored sentences from blog prose.
var tipSentenceRe = regexp.MustCompile(`(?i)\b(tip|recommend|should|avoid|make sure|don't forget|best time|pro tip|must[- ]see|worth)\b`)

type ScraperServiceInterface interface {
	ScrapeBlog(ctx context.Context, blogURL string) (*trip_models.SavedBlogContent, error)
}

type ScraperService struct {
	client *http.Client
	logger *zap.Logger
}

func NewScraperService(logger *zap.Logger) ScraperServiceInterface {
	return &ScraperService{
		client: &http.Client{Timeout: scrapeTimeout},
		logger: logger,
	}
}

func (s *ScraperService) ScrapeBlog(ctx context.Context, blogURL string) (*trip_models.SavedBlogContent, error) {
	if !strings.HasPrefix(blogURL, "http://") && !strings.HasPrefix(blogURL, "https://") {
		return nil, utils.ErrInvalidInput
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, blogURL, nil)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; tripflow/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("blog fetch failed", zap.String("url", blogURL), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrScrapeFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", utils.ErrScrapeFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrScrapeFailed, err)
	}

	doc.Find("script, style, nav, footer, header, aside").Remove()

	content := &trip_models.SavedBlogContent{
		URL:   blogURL,
		Title: extractTitle(doc),
	}

	var paragraphs []string
	doc.Find("article p, main p, .post-content p, .entry-content p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); len(text) > 40 {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); len(text) > 40 {
				paragraphs = append(paragraphs, text)
			}
		})
	}
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("%w: no readable content", utils.ErrScrapeFailed)
	}

	content.Summary = paragraphs[0]
	content.RawText = truncateRunes(strings.Join(paragraphs, "\n\n"), maxRawTextRunes)
	content.Tips = extractTips(paragraphs)
	content.Highlights = extractHighlights(doc)
	content.Images = extractImages(doc, blogURL)

	s.logger.Info("blog scraped",
		zap.String("url", blogURL),
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("tips", len(content.Tips)))
	return content, nil
}

func extractTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractTips(paragraphs []string) []string {
	var tips []string
	for _, p := range paragraphs {
		for _, sentence := range splitSentences(p) {
			if tipSentenceRe.MatchString(sentence) {
				tips = append(tips, sentence)
				if len(tips) >= maxTips {
					return tips
				}
			}
		}
	}
	return tips
}

// extractHighlights collects section headings, which on travel blogs are
// usually place or activity names.
func extractHighlights(doc *goquery.Document) []string {
	var highlights []string
	seen := make(map[string]bool)
	doc.Find("h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if len(highlights) >= maxHighlights {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" || len(text) > 120 || seen[strings.ToLower(text)] {
			return
		}
		seen[strings.ToLower(text)] = true
		highlights = append(highlights, text)
	})
	return highlights
}

func extractImages(doc *goquery.Document, base string) []string {
	var images []string
	doc.Find("article img, main img, img").Each(func(_ int, sel *goquery.Selection) {
		if len(images) >= maxImages {
			return
		}
		src, ok := sel.Attr("src")
		if !ok || !strings.HasPrefix(src, "http") {
			return
		}
		images = append(images, src)
	})
	return images
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); len(s) > 15 {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); len(s) > 15 {
		sentences = append(sentences, s)
	}
	return sentences
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
