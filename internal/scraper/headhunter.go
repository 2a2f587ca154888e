package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/fr4nk3nst1ner/devsalary/internal/client"
	"github.com/fr4nk3nst1ner/devsalary/internal/models"
)

const (
	headHunterAPIURL   = "https://api.hh.ru/vacancies"
	headHunterCurrency = "RUR"
	headHunterMaxPage  = 100
)

// HeadHunterConfig holds the fixed search filters for api.hh.ru
type HeadHunterConfig struct {
	BaseURL          string
	UserAgent        string
	Area             string
	ProfessionalRole string
	PeriodDays       int
	PerPage          int
}

// HeadHunter pages through the api.hh.ru vacancy search
type HeadHunter struct {
	cfg    HeadHunterConfig
	client *client.Client
}

// NewHeadHunter creates a HeadHunter source
func NewHeadHunter(cfg HeadHunterConfig, c *client.Client) *HeadHunter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = headHunterAPIURL
	}
	if cfg.PerPage <= 0 || cfg.PerPage > headHunterMaxPage {
		cfg.PerPage = 20
	}
	return &HeadHunter{cfg: cfg, client: c}
}

func (h *HeadHunter) Name() string { return SourceHeadHunter }

func (h *HeadHunter) Currency() string { return headHunterCurrency }

// Done stops once the page index reaches the page count the server declared
// on the most recent page.
func (h *HeadHunter) Done(nextPage int, last *models.Page) bool {
	return last == nil || nextPage >= last.Pages
}

// FetchPage retrieves one page of vacancies matching language
func (h *HeadHunter) FetchPage(ctx context.Context, language string, page int) (*models.Page, error) {
	headers := http.Header{}
	if h.cfg.UserAgent != "" {
		headers.Set("User-Agent", h.cfg.UserAgent)
	}

	params := url.Values{}
	params.Set("text", language)
	params.Set("only_with_salary", "true")
	params.Set("per_page", strconv.Itoa(h.cfg.PerPage))
	params.Set("page", strconv.Itoa(page))
	if h.cfg.Area != "" {
		params.Set("area", h.cfg.Area)
	}
	if h.cfg.ProfessionalRole != "" {
		params.Set("professional_role", h.cfg.ProfessionalRole)
	}
	if h.cfg.PeriodDays > 0 {
		params.Set("period", strconv.Itoa(h.cfg.PeriodDays))
	}

	body, err := h.client.GetJSON(ctx, h.cfg.BaseURL, headers, params)
	if err != nil {
		return nil, err
	}
	return parseHeadHunterPage(body)
}

// parseHeadHunterPage normalizes a search response. found and pages are
// required; items without a salary object are skipped.
func parseHeadHunterPage(body []byte) (*models.Page, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}

	found, err := requiredInt(body, "found")
	if err != nil {
		return nil, err
	}
	pages, err := requiredInt(body, "pages")
	if err != nil {
		return nil, err
	}

	page := &models.Page{Found: found, Pages: pages}
	gjson.GetBytes(body, "items").ForEach(func(_, item gjson.Result) bool {
		s := item.Get("salary")
		if !s.IsObject() {
			return true
		}
		page.Listings = append(page.Listings, models.SalaryBounds{
			From:     s.Get("from").Value(),
			To:       s.Get("to").Value(),
			Currency: s.Get("currency").String(),
		})
		return true
	})

	return page, nil
}

// requiredInt reads a top-level numeric field that must be present
func requiredInt(body []byte, field string) (int, error) {
	r := gjson.GetBytes(body, field)
	if !r.Exists() || r.Type == gjson.Null {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformedResponse, field)
	}
	if r.Type != gjson.Number {
		n, err := strconv.Atoi(r.String())
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedResponse, field)
		}
		return n, nil
	}
	return int(r.Int()), nil
}
