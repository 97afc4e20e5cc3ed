// Package dashboard aggregates an author's royalty dashboard from the
// author, book, sale and withdrawal tables.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"royaltydesk/m/domain"
	"royaltydesk/m/internal/metrics"
	"royaltydesk/m/internal/store"
)

// RecentSalesLimit caps the number of sales in Dashboard.RecentSales.
const RecentSalesLimit = 10

var (
	// ErrInvalidInput means the author id could not be read as an integer.
	ErrInvalidInput = errors.New("author_id must be a number")
	// ErrAuthorNotFound means no author has the requested id.
	ErrAuthorNotFound = errors.New("author not found")
)

// ParseAuthorID coerces a textual author id. Surrounding whitespace is
// ignored.
func ParseAuthorID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, raw)
	}
	return id, nil
}

type Service struct {
	store  store.Store
	logger *zap.Logger
}

func NewService(s store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, logger: logger}
}

// GetDashboard reads everything for authorID from a single store view and
// composes the dashboard. Either the whole view or an error is returned.
func (s *Service) GetDashboard(ctx context.Context, authorID int64) (domain.Dashboard, error) {
	var view domain.Dashboard
	err := s.store.View(ctx, func(r store.Reader) error {
		author, err := r.AuthorByID(ctx, authorID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAuthorNotFound
		}
		if err != nil {
			return err
		}

		books, err := r.BooksByAuthor(ctx, authorID)
		if err != nil {
			return err
		}
		bookIDs := make([]int64, len(books))
		for i, b := range books {
			bookIDs[i] = b.ID
		}

		sales, err := r.SalesForBooks(ctx, bookIDs)
		if err != nil {
			return err
		}

		withdrawals, err := r.WithdrawalsByAuthor(ctx, authorID)
		if err != nil {
			return err
		}

		view = Build(author, books, sales, withdrawals)
		return nil
	})

	switch {
	case errors.Is(err, ErrAuthorNotFound):
		metrics.ObserveDashboard(metrics.OutcomeNotFound)
		return domain.Dashboard{}, fmt.Errorf("%w: id %d", ErrAuthorNotFound, authorID)
	case err != nil:
		metrics.ObserveDashboard(metrics.OutcomeError)
		s.logger.Error("dashboard read failed", zap.Int64("author_id", authorID), zap.Error(err))
		return domain.Dashboard{}, fmt.Errorf("load dashboard for author %d: %w", authorID, err)
	}

	metrics.ObserveDashboard(metrics.OutcomeOK)
	s.logger.Debug("dashboard composed",
		zap.Int64("author_id", authorID),
		zap.Int("books", view.TotalBooks),
		zap.Int("recent_sales", len(view.RecentSales)),
		zap.Int("withdrawals", len(view.Withdrawals)),
	)
	return view, nil
}

// Build composes a dashboard from already selected rows: books belong to
// the author, sales belong to those books and withdrawals to the author.
// Sales are expected in stored order.
func Build(author domain.Author, books []domain.Book, sales []domain.Sale, withdrawals []domain.Withdrawal) domain.Dashboard {
	royaltyByBook := make(map[int64]decimal.Decimal, len(books))
	titles := make(map[int64]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}

	total := decimal.Zero
	for _, sale := range sales {
		royaltyByBook[sale.BookID] = royaltyByBook[sale.BookID].Add(sale.RoyaltyEarned)
		total = total.Add(sale.RoyaltyEarned)
	}

	summaries := make([]domain.BookSummary, len(books))
	for i, b := range books {
		summaries[i] = domain.BookSummary{
			ID:             b.ID,
			Title:          b.Title,
			RoyaltyPerSale: b.RoyaltyPerSale,
			TotalRoyalty:   royaltyByBook[b.ID],
		}
	}

	// ISO dates order lexicographically; the stable sort keeps stored
	// order among sales of the same day.
	sorted := slices.Clone(sales)
	slices.SortStableFunc(sorted, func(a, b domain.Sale) int {
		return strings.Compare(b.SaleDate, a.SaleDate)
	})
	if len(sorted) > RecentSalesLimit {
		sorted = sorted[:RecentSalesLimit]
	}
	recent := make([]domain.RecentSale, len(sorted))
	for i, sale := range sorted {
		recent[i] = domain.RecentSale{
			BookTitle:     titles[sale.BookID],
			SaleDate:      sale.SaleDate,
			QuantitySold:  sale.QuantitySold,
			RoyaltyEarned: sale.RoyaltyEarned,
		}
	}

	if withdrawals == nil {
		withdrawals = []domain.Withdrawal{}
	}

	return domain.Dashboard{
		TotalEarnings:  total,
		CurrentBalance: author.CurrentBalance,
		TotalBooks:     len(books),
		Books:          summaries,
		RecentSales:    recent,
		Withdrawals:    slices.Clone(withdrawals),
	}
}
