package model

// ProjectMeta is the project metadata consumed by the classifiers.
// CoingeckoID is empty when the project's token has not had a TGE.
type ProjectMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Stack       string `json:"stack,omitempty"`
	Tag         string `json:"tag,omitempty"`
	SubTag      string `json:"subTag,omitempty"`
	CoingeckoID string `json:"coingeckoId,omitempty"`
}

// CategoryValue returns the metadata field selected for the category
// taxonomy. An unknown field behaves like an empty value.
func (m ProjectMeta) CategoryValue(field CategoryField) string {
	switch field {
	case CategoryFieldStack:
		return m.Stack
	case CategoryFieldTag:
		return m.Tag
	case CategoryFieldSubTag:
		return m.SubTag
	}
	return ""
}

// MissingSnapshot flags a project that carries an open cost basis but has
// no valuation snapshot at a portfolio date. These feed the deliverable
// alerting pipeline upstream.
type MissingSnapshot struct {
	ProjectID   string  `json:"projectId"`
	ProjectName string  `json:"projectName"`
	Cost        float64 `json:"cost"`
}
