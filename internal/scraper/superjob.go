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
	superJobAPIURL   = "https://api.superjob.ru/2.0/vacancies/"
	superJobCurrency = "rub"
	// DefaultSuperJobPageCap bounds pagination; SuperJob does not report a page count
	DefaultSuperJobPageCap = 25
)

// SuperJobConfig holds credentials and fixed search filters for api.superjob.ru
type SuperJobConfig struct {
	BaseURL     string
	SecretKey   string
	AccessToken string
	Town        string
	Catalogues  string
	PeriodDays  int
	Count       int
	PageCap     int
}

// SuperJob pages through the api.superjob.ru vacancy search
type SuperJob struct {
	cfg    SuperJobConfig
	client *client.Client
}

// NewSuperJob creates a SuperJob source
func NewSuperJob(cfg SuperJobConfig, c *client.Client) *SuperJob {
	if cfg.BaseURL == "" {
		cfg.BaseURL = superJobAPIURL
	}
	if cfg.PageCap <= 0 {
		cfg.PageCap = DefaultSuperJobPageCap
	}
	return &SuperJob{cfg: cfg, client: c}
}

func (s *SuperJob) Name() string { return SourceSuperJob }

func (s *SuperJob) Currency() string { return superJobCurrency }

// Done stops at the fixed page cap whatever the server returned
func (s *SuperJob) Done(nextPage int, _ *models.Page) bool {
	return nextPage >= s.cfg.PageCap
}

// FetchPage retrieves one page of vacancies matching language
func (s *SuperJob) FetchPage(ctx context.Context, language string, page int) (*models.Page, error) {
	headers := http.Header{}
	headers.Set("X-Api-App-Id", s.cfg.SecretKey)
	if s.cfg.AccessToken != "" {
		headers.Set("Authorization", "Bearer "+s.cfg.AccessToken)
	}

	params := url.Values{}
	params.Set("keyword", language)
	params.Set("page", strconv.Itoa(page))
	if s.cfg.Town != "" {
		params.Set("town", s.cfg.Town)
	}
	if s.cfg.Catalogues != "" {
		params.Set("catalogues", s.cfg.Catalogues)
	}
	if s.cfg.PeriodDays > 0 {
		params.Set("period", strconv.Itoa(s.cfg.PeriodDays))
	}
	if s.cfg.Count > 0 {
		params.Set("count", strconv.Itoa(s.cfg.Count))
	}

	body, err := s.client.GetJSON(ctx, s.cfg.BaseURL, headers, params)
	if err != nil {
		return nil, err
	}
	return parseSuperJobPage(body)
}

// parseSuperJobPage normalizes a search response; total is required
func parseSuperJobPage(body []byte) (*models.Page, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}

	total, err := requiredInt(body, "total")
	if err != nil {
		return nil, err
	}

	page := &models.Page{Found: total}
	gjson.GetBytes(body, "objects").ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		page.Listings = append(page.Listings, models.SalaryBounds{
			From:     item.Get("payment_from").Value(),
			To:       item.Get("payment_to").Value(),
			Currency: item.Get("currency").String(),
		})
		return true
	})

	return page, nil
}
