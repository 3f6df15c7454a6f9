package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspay/claim-engine/claim"
	"github.com/campuspay/claim-engine/lecturer"
	"github.com/campuspay/claim-engine/store/jsonfile"
)

func sampleClaims() []claim.Claim {
	return []claim.Claim{
		{
			ID:            "c1",
			LecturerName:  "A. Mokoena",
			LecturerID:    "L001",
			LecturerEmail: "a.mokoena@uni.ac.za",
			HoursWorked:   decimal.NewFromInt(10),
			HourlyRate:    decimal.NewFromInt(15),
			TotalAmount:   decimal.NewFromInt(150),
			Notes:         "tutorials",
			Status:        claim.StatusPending,
			DateSubmitted: "2026-08-01 09:00",
		},
		{
			ID:               "c2",
			LecturerName:     "B. Naidoo",
			LecturerID:       "L002",
			LecturerEmail:    "b.naidoo@uni.ac.za",
			HoursWorked:      decimal.RequireFromString("7.5"),
			HourlyRate:       decimal.RequireFromString("12.01"),
			TotalAmount:      decimal.RequireFromString("90.08"),
			Status:           claim.StatusRejected,
			DateSubmitted:    "2026-08-02 14:30",
			StoredFilePath:   "/data/Files/abc.pdf",
			OriginalFileName: "timesheet.pdf",
		},
	}
}

func sampleLecturers() []lecturer.Lecturer {
	return []lecturer.Lecturer{
		{LecturerID: "L001", FullName: "A. Mokoena", Email: "a.mokoena@uni.ac.za", PasswordHash: lecturer.HashPassword("s3cret")},
		{LecturerID: "L002", FullName: "B. Naidoo", Email: "b.naidoo@uni.ac.za", PasswordHash: lecturer.HashPassword("other")},
	}
}

func TestLoad_MissingFiles_EmptyCollections(t *testing.T) {
	s, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	claims, err := s.Claims().Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, claims)

	lecturers, err := s.Lecturers().Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, lecturers)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Claims().Save(ctx, sampleClaims()))
	require.NoError(t, s.Lecturers().Save(ctx, sampleLecturers()))

	claims, err := s.Claims().Load(ctx)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	assert.Equal(t, "c1", claims[0].ID)
	assert.True(t, claims[1].TotalAmount.Equal(decimal.RequireFromString("90.08")))
	assert.Equal(t, claim.StatusRejected, claims[1].Status)
	assert.Equal(t, "timesheet.pdf", claims[1].OriginalFileName)

	lecturers, err := s.Lecturers().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleLecturers(), lecturers)
}

func TestSave_RewritesWholeFile(t *testing.T) {
	// GIVEN: Two claims saved
	// WHEN: Saving a one-claim collection
	// THEN: Load sees exactly the one claim - no remnants of the old file

	s, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Claims().Save(ctx, sampleClaims()))
	require.NoError(t, s.Claims().Save(ctx, sampleClaims()[:1]))

	claims, err := s.Claims().Load(ctx)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "c1", claims[0].ID)
}

func TestSave_WritesExpectedFileNames(t *testing.T) {
	dir := t.TempDir()
	s, err := jsonfile.New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Claims().Save(ctx, sampleClaims()))
	require.NoError(t, s.Lecturers().Save(ctx, sampleLecturers()))

	for _, name := range []string{"claims.json", "lecturers.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, "%s must exist", name)
		assert.Equal(t, byte('['), data[0], "%s must hold a JSON array", name)
	}
}

func TestSave_EmptyCollection_ValidArrayFile(t *testing.T) {
	dir := t.TempDir()
	s, err := jsonfile.New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Claims().Save(ctx, nil))

	data, err := os.ReadFile(filepath.Join(dir, "claims.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	claims, err := s.Claims().Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, claims)
}

func TestClaims_AmountsSerializeAsNumbers(t *testing.T) {
	dir := t.TempDir()
	s, err := jsonfile.New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Claims().Save(context.Background(), sampleClaims()[:1]))

	data, err := os.ReadFile(filepath.Join(dir, "claims.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"TotalAmount":150`, "amounts must be JSON numbers, not strings")
}
