package services

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"callcenter/internal/models"
)

// MatchRetailers keeps retailers whose name or retailer id contains term,
// ignoring case. A blank term keeps everything.
func MatchRetailers(list []models.Retailer, term string) []models.Retailer {
	term = strings.TrimSpace(term)
	out := make([]models.Retailer, 0, len(list))
	if term == "" {
		return append(out, list...)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, r := range list {
		if strings.Contains(fold.String(r.Name), needle) || strings.Contains(fold.String(r.RetailerID), needle) {
			out = append(out, r)
		}
	}
	return out
}

// SortRetailers returns a sorted copy. Missing balances count as zero and
// missing dates sort first, so never-called retailers come up top.
func SortRetailers(list []models.Retailer, by models.RetailerSort) []models.Retailer {
	out := append([]models.Retailer(nil), list...)
	switch by {
	case models.SortBalanceDesc:
		sort.SliceStable(out, func(i, j int) bool { return balanceOf(out[i]) > balanceOf(out[j]) })
	case models.SortBalanceAsc:
		sort.SliceStable(out, func(i, j int) bool { return balanceOf(out[i]) < balanceOf(out[j]) })
	case models.SortLastCall:
		sort.SliceStable(out, func(i, j int) bool { return unixOf(out[i].LastCallDate) < unixOf(out[j].LastCallDate) })
	case models.SortLastRecharge:
		sort.SliceStable(out, func(i, j int) bool { return unixOf(out[i].LastRechargeDate) < unixOf(out[j].LastRechargeDate) })
	}
	return out
}

func balanceOf(r models.Retailer) float64 {
	if r.Balance == nil {
		return 0
	}
	return *r.Balance
}

func unixOf(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}
