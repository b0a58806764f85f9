package validation

import (
	"time"

	"github.com/fundsight/Fund-Monitor-Backend/internal/apperrors"
	"github.com/fundsight/Fund-Monitor-Backend/internal/model"
)

// ParseTaxonomySelector validates the taxonomy query parameter and, for the
// category taxonomy, the metadata field to group by. An empty category
// field defaults to "stack".
func ParseTaxonomySelector(taxonomy, categoryField string) (model.TaxonomySelector, error) {
	sel := model.TaxonomySelector{Taxonomy: model.Taxonomy(taxonomy)}

	switch sel.Taxonomy {
	case model.TaxonomyMOICBucket, model.TaxonomyAssetType, model.TaxonomyValuationStage:
		return sel, nil
	case model.TaxonomyCategory:
	default:
		return model.TaxonomySelector{}, apperrors.ErrUnknownTaxonomy
	}

	if categoryField == "" {
		sel.CategoryField = model.CategoryFieldStack
		return sel, nil
	}

	sel.CategoryField = model.CategoryField(categoryField)
	switch sel.CategoryField {
	case model.CategoryFieldStack, model.CategoryFieldTag, model.CategoryFieldSubTag:
		return sel, nil
	}
	return model.TaxonomySelector{}, apperrors.ErrUnknownCategoryField
}

// ParseDateParams parses the required portfolio_date parameter and the
// optional cutoff_date parameter. A missing cutoff returns the zero time;
// the service layer then defaults it to the portfolio date. An explicit
// cutoff after the portfolio date is rejected.
func ParseDateParams(portfolioDateStr, cutoffStr string) (portfolioDate, cutoff time.Time, err error) {
	if portfolioDateStr == "" {
		return time.Time{}, time.Time{}, apperrors.ErrMissingPortfolioDate
	}

	portfolioDate, err = ParseTime(portfolioDateStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDate
	}

	if cutoffStr == "" {
		return portfolioDate, time.Time{}, nil
	}

	cutoff, err = ParseTime(cutoffStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDate
	}
	if cutoff.After(portfolioDate) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}

	return portfolioDate, cutoff, nil
}
