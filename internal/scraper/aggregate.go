package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fr4nk3nst1ner/devsalary/internal/models"
	"github.com/fr4nk3nst1ner/devsalary/internal/salary"
)

const (
	SourceSuperJob   = "superjob"
	SourceHeadHunter = "headhunter"
)

// SourceNames lists the supported sources in report order
var SourceNames = []string{SourceSuperJob, SourceHeadHunter}

// ErrMalformedResponse is returned when a page lacks a required top-level field
var ErrMalformedResponse = errors.New("malformed API response")

// Source is one job board API the aggregator can page through
type Source interface {
	// Name is the source identifier used in logs and errors
	Name() string
	// Currency is the currency code salaries must be quoted in to be counted
	Currency() string
	// FetchPage retrieves and normalizes one page of search results
	FetchPage(ctx context.Context, language string, page int) (*models.Page, error)
	// Done reports whether pagination stops before fetching nextPage
	Done(nextPage int, last *models.Page) bool
}

// Progress is advanced once per finished language
type Progress interface {
	Increment()
}

// accumulator collects usable salaries for a single aggregation run
type accumulator struct {
	processed int
	sum       float64
}

func (a *accumulator) add(v float64) {
	a.processed++
	a.sum += v
}

func (a *accumulator) average() float64 {
	if a.processed == 0 {
		return 0
	}
	return a.sum / float64(a.processed)
}

// IsValidSource checks if the source is supported
func IsValidSource(source string) bool {
	for _, name := range SourceNames {
		if strings.EqualFold(name, source) {
			return true
		}
	}
	return false
}

// Aggregate pages through src for language and returns its statistics.
// VacanciesFound is the total reported by the last fetched page. The first
// failed request aborts the aggregation.
func Aggregate(ctx context.Context, src Source, language string, logger *zap.Logger) (models.LanguageStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var acc accumulator
	var stats models.LanguageStats

	for page := 0; ; {
		result, err := src.FetchPage(ctx, language, page)
		if err != nil {
			return models.LanguageStats{}, fmt.Errorf("%s: language %q page %d: %w", src.Name(), language, page, err)
		}

		usable := 0
		for _, listing := range result.Listings {
			if v, ok := salary.Estimate(listing, src.Currency()); ok {
				acc.add(v)
				usable++
			}
		}
		stats.VacanciesFound = result.Found

		logger.Debug("Fetched page",
			zap.String("source", src.Name()),
			zap.String("language", language),
			zap.Int("page", page),
			zap.Int("listings", len(result.Listings)),
			zap.Int("usable", usable),
			zap.Int("found", result.Found))

		page++
		if src.Done(page, result) {
			break
		}
	}

	stats.VacanciesProcessed = acc.processed
	stats.AverageSalary = acc.average()

	logger.Info("Language aggregated",
		zap.String("source", src.Name()),
		zap.String("language", language),
		zap.Int("found", stats.VacanciesFound),
		zap.Int("processed", stats.VacanciesProcessed),
		zap.Float64("average_salary", stats.AverageSalary))

	return stats, nil
}

// Collect aggregates every language in order and returns the report rows in
// the same order. progress may be nil.
func Collect(ctx context.Context, src Source, languages []string, progress Progress, logger *zap.Logger) ([]models.ReportRow, error) {
	rows := make([]models.ReportRow, 0, len(languages))
	for _, language := range languages {
		stats, err := Aggregate(ctx, src, language, logger)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.ReportRow{Language: language, Stats: stats})
		if progress != nil {
			progress.Increment()
		}
	}
	return rows, nil
}
