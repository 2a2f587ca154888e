package models

// SalaryBounds represents the salary fork of a single listing as the source
// API reported it. From and To hold the raw decoded JSON value: nil, a number
// or a numeric string.
type SalaryBounds struct {
	From     any    `json:"from"`
	To       any    `json:"to"`
	Currency string `json:"currency"`
}

// Page represents one page of search results normalized across sources
type Page struct {
	Found    int            `json:"found"`
	Pages    int            `json:"pages,omitempty"`
	Listings []SalaryBounds `json:"listings"`
}

// LanguageStats represents the aggregated statistics for one language on one source.
// AverageSalary is 0 when no vacancy had a usable salary.
type LanguageStats struct {
	VacanciesFound     int     `json:"vacancies_found"`
	VacanciesProcessed int     `json:"vacancies_processed"`
	AverageSalary      float64 `json:"average_salary"`
}

// ReportRow is one language line of a source report
type ReportRow struct {
	Language string        `json:"language"`
	Stats    LanguageStats `json:"stats"`
}
