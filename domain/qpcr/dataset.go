package qpcr

// Dataset is the transformed observation set: the normalized table joined
// with the derived wDCt response and, after fitting, the selected model's
// residuals. It is the single input to model fitting and contrast extraction.
type Dataset struct {
	// Table is the normalized table, main factor in column 1.
	Table *Table
	// MainFactor names column 1; Levels is its full categorical domain in
	// caller order, reference first.
	MainFactor string
	Levels     []string
	// Factors lists the covariate factor columns in table order, excluding
	// the main factor, the block column, and the raw qPCR columns.
	Factors []string
	// Block names the blocking column, empty when absent.
	Block string
	// WDCt holds the weighted delta-Ct response, one value per table row.
	// Lower wDCt means higher relative expression.
	WDCt []float64
	// Resid holds the selected model's residuals; nil until assigned.
	Resid []float64
}

// Reference returns the reference level.
func (d *Dataset) Reference() string {
	return d.Levels[0]
}

// MainLevels returns each row's main-factor level in row order.
func (d *Dataset) MainLevels() []string {
	levels := make([]string, len(d.Table.Rows))
	for i, row := range d.Table.Rows {
		levels[i] = row[0]
	}
	return levels
}

// GroupWDCt groups the wDCt values by main-factor level. Levels with no
// observations map to an empty slice.
func (d *Dataset) GroupWDCt() map[string][]float64 {
	groups := make(map[string][]float64, len(d.Levels))
	for _, level := range d.Levels {
		groups[level] = []float64{}
	}
	for i, level := range d.MainLevels() {
		groups[level] = append(groups[level], d.WDCt[i])
	}
	return groups
}

// FactorLevels returns the distinct values of the named factor column in
// first-appearance order. The main factor uses the caller's ordering instead.
func (d *Dataset) FactorLevels(factor string) ([]string, error) {
	if factor == d.MainFactor {
		return d.Levels, nil
	}
	values, err := d.Table.Column(factor)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	levels := make([]string, 0, 4)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	return levels, nil
}
