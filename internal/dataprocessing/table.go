package dataprocessing

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "storeinsight/internal/errors"
)

// column returns the named column or a SchemaError when it is absent.
func column(df dataframe.DataFrame, name string) (series.Series, error) {
	s := df.Col(name)
	if s.Err != nil {
		return series.Series{}, apperrors.NewSchemaError(name, "not found")
	}
	return s, nil
}

// numericColumn is column restricted to Int and Float series.
func numericColumn(df dataframe.DataFrame, name string) (series.Series, error) {
	s, err := column(df, name)
	if err != nil {
		return s, err
	}
	if t := s.Type(); t != series.Int && t != series.Float {
		return series.Series{}, apperrors.NewSchemaError(name, "expected a numeric column, found "+string(t))
	}
	return s, nil
}

// cellString renders a present cell the way it appears in the workbook.
func cellString(s series.Series, i int) string {
	e := s.Elem(i)
	if s.Type() == series.Float {
		return strconv.FormatFloat(e.Float(), 'f', -1, 64)
	}
	return e.String()
}

// replaceColumn swaps in s, keeping the frame's error if any.
func replaceColumn(df dataframe.DataFrame, s series.Series) (dataframe.DataFrame, error) {
	out := df.Mutate(s)
	if out.Err != nil {
		return dataframe.DataFrame{}, apperrors.NewSchemaError(s.Name, out.Err.Error())
	}
	return out, nil
}
