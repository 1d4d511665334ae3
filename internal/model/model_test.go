package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/market_radar/internal/errs"
)

var testDefaults = Defaults{
	Geography:   "Japan",
	Language:    LangJA,
	MetricFocus: []string{"売上", "GMV", "CVR"},
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	run, err := Input{FocusKeyword: "D2Cコスメ"}.Normalize(testDefaults)
	require.NoError(t, err)

	assert.Equal(t, "D2Cコスメ", run.FocusKeyword)
	assert.Equal(t, "Japan", run.Geography)
	assert.Equal(t, 3, run.MinExamples)
	assert.Equal(t, LangJA, run.Language)
	assert.Equal(t, []string{"売上", "GMV", "CVR"}, run.MetricFocus)
	assert.True(t, run.IncludeSources)
}

func TestNormalizeKeepsOverrides(t *testing.T) {
	include := false
	run, err := Input{
		FocusKeyword:   "SaaS x AI",
		Geography:      "United States",
		MinExamples:    2,
		Language:       LangEN,
		MetricFocus:    []string{"ROAS"},
		IncludeSources: &include,
	}.Normalize(testDefaults)
	require.NoError(t, err)

	assert.Equal(t, "United States", run.Geography)
	assert.Equal(t, 2, run.MinExamples)
	assert.Equal(t, LangEN, run.Language)
	assert.Equal(t, []string{"ROAS"}, run.MetricFocus)
	assert.False(t, run.IncludeSources)
}

func TestNormalizeRejectsEmptyKeyword(t *testing.T) {
	for _, kw := range []string{"", "   "} {
		_, err := Input{FocusKeyword: kw}.Normalize(testDefaults)
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	}
}

func TestNormalizeRejectsMinExamplesOutOfRange(t *testing.T) {
	for _, n := range []int{-1, 7, 100} {
		_, err := Input{FocusKeyword: "EC", MinExamples: n}.Normalize(testDefaults)
		require.Error(t, err, "minExamples=%d", n)
		assert.True(t, errs.IsValidation(err))
	}
}

func TestNormalizeRejectsUnknownLanguage(t *testing.T) {
	_, err := Input{FocusKeyword: "EC", Language: "fr"}.Normalize(testDefaults)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestNormalizeRejectsBlankMetricFocus(t *testing.T) {
	_, err := Input{FocusKeyword: "EC", MetricFocus: []string{"売上", " "}}.Normalize(testDefaults)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestNormalizeCopiesDefaultMetricFocus(t *testing.T) {
	run, err := Input{FocusKeyword: "EC"}.Normalize(testDefaults)
	require.NoError(t, err)

	run.MetricFocus[0] = "改ざん"
	assert.Equal(t, "売上", testDefaults.MetricFocus[0])
}
