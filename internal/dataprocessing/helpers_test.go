package dataprocessing

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
)

// col builds a series from workbook-style strings; "NaN" is a missing value.
func col(name string, t series.Type, values ...string) series.Series {
	return series.New(values, t, name)
}

func frame(t *testing.T, cols ...series.Series) dataframe.DataFrame {
	t.Helper()
	df := dataframe.New(cols...)
	require.NoError(t, df.Err)
	return df
}

// columnValues returns a column as strings, "NaN" for missing values.
func columnValues(t *testing.T, df dataframe.DataFrame, name string) []string {
	t.Helper()
	s := df.Col(name)
	require.NoError(t, s.Err)
	out := make([]string, s.Len())
	for i := range out {
		if s.Elem(i).IsNA() {
			out[i] = "NaN"
			continue
		}
		out[i] = cellString(s, i)
	}
	return out
}
