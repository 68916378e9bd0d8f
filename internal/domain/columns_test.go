package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSampleColumns(t *testing.T) {
	t.Run("canonical names", func(t *testing.T) {
		cols, err := ResolveSampleColumns([]string{"latitude", "longitude", "NO2_column"})
		require.NoError(t, err)
		assert.Equal(t, SampleColumns{Latitude: 0, Longitude: 1, NO2: 2}, cols)
	})

	t.Run("no2 synonym with extra columns", func(t *testing.T) {
		cols, err := ResolveSampleColumns([]string{"time", " no2 ", "longitude", "latitude"})
		require.NoError(t, err)
		assert.Equal(t, SampleColumns{Latitude: 3, Longitude: 2, NO2: 1}, cols)
	})

	t.Run("canonical wins over synonym", func(t *testing.T) {
		cols, err := ResolveSampleColumns([]string{"no2", "latitude", "longitude", "NO2_column"})
		require.NoError(t, err)
		assert.Equal(t, 3, cols.NO2)
	})

	t.Run("byte order mark", func(t *testing.T) {
		cols, err := ResolveSampleColumns([]string{"\ufefflatitude", "longitude", "no2"})
		require.NoError(t, err)
		assert.Equal(t, 0, cols.Latitude)
	})

	t.Run("missing longitude", func(t *testing.T) {
		_, err := ResolveSampleColumns([]string{"latitude", "NO2_column"})
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, ColLongitude, schemaErr.Field)
		assert.Contains(t, err.Error(), `field "longitude"`)
	})

	t.Run("missing concentration", func(t *testing.T) {
		_, err := ResolveSampleColumns([]string{"latitude", "longitude"})
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, ColNO2, schemaErr.Field)
	})

	t.Run("empty header", func(t *testing.T) {
		_, err := ResolveSampleColumns(nil)
		assert.Equal(t, KindSchema, ErrorKind(err))
	})
}

func TestResolveAdvisoryColumns(t *testing.T) {
	zone, score, err := ResolveAdvisoryColumns(SnapshotColumns)
	require.NoError(t, err)
	assert.Equal(t, 3, zone)
	assert.Equal(t, 5, score)

	_, _, err = ResolveAdvisoryColumns([]string{"latitude", "aqi"})
	var missingErr *MissingColumnError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{ColZone, ColRiskScore}, missingErr.Columns)
	assert.Equal(t, KindMissingColumn, ErrorKind(err))

	_, _, err = ResolveAdvisoryColumns([]string{"zone"})
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{ColRiskScore}, missingErr.Columns)
}

func TestErrorKind(t *testing.T) {
	assert.Empty(t, ErrorKind(nil))
	assert.Equal(t, KindEmptyResult, ErrorKind(&EmptyResultError{Total: 3}))
	assert.Equal(t, KindOther, ErrorKind(assert.AnError))

	err := &SchemaError{Field: ColNO2, Row: 4, Reason: "value is not finite"}
	assert.Equal(t, `schema error: field "NO2_column" row 4: value is not finite`, err.Error())
}
