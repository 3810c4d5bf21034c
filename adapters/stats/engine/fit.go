package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"qpcrfold/domain/core"
	"qpcrfold/domain/model"
	"qpcrfold/domain/qpcr"
)

// Fit performs an ordinary-least-squares fit of the dataset's wDCt response
// against the model specification. Rank deficiency or a model with no
// residual degrees of freedom is fatal: it is a property of the input data,
// not recoverable here.
func Fit(ds *qpcr.Dataset, spec model.Spec) (*qpcr.ModelFit, error) {
	design, err := buildDesign(ds, spec)
	if err != nil {
		return nil, err
	}
	return fitDesign(ds.WDCt, design, spec)
}

func fitDesign(y []float64, design *designMatrix, spec model.Spec) (*qpcr.ModelFit, error) {
	n, p := design.X.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("%w: %d design rows, %d responses", core.ErrInsufficientData, n, len(y))
	}
	if n-p <= 0 {
		return nil, core.NewFitError(core.ErrNoResidualDF,
			fmt.Sprintf("%d observations for %d coefficients", n, p))
	}
	if rank := matrixRank(design.X); rank < p {
		return nil, core.NewFitError(core.ErrRankDeficient,
			fmt.Sprintf("rank %d for %d columns", rank, p))
	}

	var qr mat.QR
	qr.Factorize(design.X)
	beta := mat.NewDense(p, 1, nil)
	yVec := mat.NewDense(n, 1, y)
	if err := qr.SolveTo(beta, false, yVec); err != nil {
		return nil, core.NewFitError(core.ErrRankDeficient, err.Error())
	}

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		pred := 0.0
		for j := 0; j < p; j++ {
			pred += design.X.At(i, j) * beta.At(j, 0)
		}
		fitted[i] = pred
		residuals[i] = y[i] - pred
		rss += residuals[i] * residuals[i]
	}

	dfResid := n - p
	sigma2 := rss / float64(dfResid)

	var xtx mat.Dense
	xtx.Mul(design.X.T(), design.X)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, core.NewFitError(core.ErrRankDeficient, err.Error())
	}
	xtxInv := make([][]float64, p)
	for i := 0; i < p; i++ {
		xtxInv[i] = make([]float64, p)
		for j := 0; j < p; j++ {
			xtxInv[i][j] = inv.At(i, j)
		}
	}

	coefs := make([]qpcr.Coefficient, p)
	for j, col := range design.Columns {
		coefs[j] = qpcr.Coefficient{Name: col.Name, Estimate: beta.At(j, 0)}
	}

	return &qpcr.ModelFit{
		Spec:         spec,
		Coefficients: coefs,
		Fitted:       fitted,
		Residuals:    residuals,
		RSS:          rss,
		DFResidual:   dfResid,
		Sigma2:       sigma2,
		Design: &qpcr.DesignInfo{
			Columns:      design.Columns,
			XtXInv:       xtxInv,
			FactorLevels: design.Levels,
		},
	}, nil
}

// matrixRank computes the numerical rank via singular values.
func matrixRank(a *mat.Dense) int {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return 0
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0
	}
	r, c := a.Dims()
	tol := float64(max(r, c)) * values[0] * 1e-12
	rank := 0
	for _, sv := range values {
		if sv > tol && !math.IsNaN(sv) {
			rank++
		}
	}
	return rank
}
