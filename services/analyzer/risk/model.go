// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package risk fits a per-request override-risk model.
//
// The model is intentionally small and fixed: a standardized logistic
// regression on two features (note sentiment, skepticism flag) predicting
// whether the human overrode the model. It is refit from scratch on every
// request and never shared or persisted; Train is a pure function from
// rows to a fitted pipeline value.
//
// The fit is deterministic: features are standardized to zero mean and
// unit variance, the solver is Newton-Raphson from a zero start with a
// fixed iteration cap, and an L2 penalty on the coefficients (not the
// intercept) keeps degenerate batches bounded.
package risk

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/trustscope-ai/trustscope/services/analyzer/datatypes"
)

// ErrNoData indicates an attempt to fit on an empty batch.
var ErrNoData = errors.New("no rows to fit")

const (
	numFeatures = 2

	// l2Penalty is the ridge strength on the coefficients. Matches the
	// conventional default of regularized logistic solvers (C=1).
	l2Penalty = 1.0

	maxIterations = 100
	gradTolerance = 1e-10
)

// scaler standardizes the two features to zero mean and unit variance.
// A feature with zero variance within the batch keeps scale 1, so
// standardization never divides by zero.
type scaler struct {
	mean  [numFeatures]float64
	scale [numFeatures]float64
}

func fitScaler(features [][numFeatures]float64) scaler {
	var s scaler
	n := float64(len(features))

	for j := 0; j < numFeatures; j++ {
		var sum float64
		for _, f := range features {
			sum += f[j]
		}
		s.mean[j] = sum / n

		var ss float64
		for _, f := range features {
			d := f[j] - s.mean[j]
			ss += d * d
		}
		std := math.Sqrt(ss / n)
		if std == 0 {
			std = 1
		}
		s.scale[j] = std
	}
	return s
}

func (s scaler) transform(f [numFeatures]float64) [numFeatures]float64 {
	var out [numFeatures]float64
	for j := 0; j < numFeatures; j++ {
		out[j] = (f[j] - s.mean[j]) / s.scale[j]
	}
	return out
}

// Pipeline is a fitted scaler plus logistic classifier. Pipelines are
// immutable once returned by Train; create one per request.
type Pipeline struct {
	scaler    scaler
	intercept float64
	coef      [numFeatures]float64
}

func featuresOf(r datatypes.DecisionRecord) [numFeatures]float64 {
	return [numFeatures]float64{r.Sentiment, float64(r.SkepticismFlag)}
}

// Train fits the scaler and classifier on the batch.
//
// The target is the Override field; the features are Sentiment and
// SkepticismFlag, which the extractor must have populated. Identical input
// rows always produce identical coefficients.
func Train(records []datatypes.DecisionRecord) (*Pipeline, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	features := make([][numFeatures]float64, len(records))
	targets := make([]float64, len(records))
	for i, r := range records {
		features[i] = featuresOf(r)
		if r.Override {
			targets[i] = 1
		}
	}

	s := fitScaler(features)
	for i := range features {
		features[i] = s.transform(features[i])
	}

	intercept, coef, err := fitLogistic(features, targets)
	if err != nil {
		return nil, fmt.Errorf("fit logistic model: %w", err)
	}

	return &Pipeline{scaler: s, intercept: intercept, coef: coef}, nil
}

// Weights returns the learned coefficients, post-standardization.
func (p *Pipeline) Weights() datatypes.ModelWeights {
	return datatypes.ModelWeights{
		SentimentWeight:  p.coef[0],
		SkepticismWeight: p.coef[1],
	}
}

// PredictOne returns the predicted override probability for one record.
func (p *Pipeline) PredictOne(r datatypes.DecisionRecord) float64 {
	f := p.scaler.transform(featuresOf(r))
	z := p.intercept
	for j := 0; j < numFeatures; j++ {
		z += p.coef[j] * f[j]
	}
	return sigmoid(z)
}

// Predict returns the predicted override probability per record, in [0, 1].
func (p *Pipeline) Predict(records []datatypes.DecisionRecord) []float64 {
	probs := make([]float64, len(records))
	for i, r := range records {
		probs[i] = p.PredictOne(r)
	}
	return probs
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// fitLogistic runs Newton-Raphson on the penalized log-likelihood.
//
// Parameter vector is (intercept, w1, w2); the ridge term applies to the
// coefficients only. The feature space is two-dimensional, so the 3x3
// Newton system is solved directly each iteration.
func fitLogistic(features [][numFeatures]float64, targets []float64) (float64, [numFeatures]float64, error) {
	const dim = numFeatures + 1
	theta := make([]float64, dim)

	grad := mat.NewVecDense(dim, nil)
	hess := mat.NewDense(dim, dim, nil)
	var step mat.VecDense

	for iter := 0; iter < maxIterations; iter++ {
		grad.Zero()
		hess.Zero()

		// Penalty on coefficients, intercept excluded.
		for j := 1; j < dim; j++ {
			grad.SetVec(j, l2Penalty*theta[j])
			hess.Set(j, j, l2Penalty)
		}

		for i, f := range features {
			x := [dim]float64{1, f[0], f[1]}
			var z float64
			for j := 0; j < dim; j++ {
				z += theta[j] * x[j]
			}
			p := sigmoid(z)
			resid := p - targets[i]
			w := p * (1 - p)

			for j := 0; j < dim; j++ {
				grad.SetVec(j, grad.AtVec(j)+resid*x[j])
				for k := 0; k < dim; k++ {
					hess.Set(j, k, hess.At(j, k)+w*x[j]*x[k])
				}
			}
		}

		if mat.Norm(grad, 2) < gradTolerance {
			break
		}

		if err := step.SolveVec(hess, grad); err != nil {
			return 0, [numFeatures]float64{}, fmt.Errorf("newton step: %w", err)
		}
		for j := 0; j < dim; j++ {
			theta[j] -= step.AtVec(j)
		}
	}

	return theta[0], [numFeatures]float64{theta[1], theta[2]}, nil
}
