package lecturer_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspay/claim-engine/lecturer"
	"github.com/campuspay/claim-engine/store/memory"
)

func newTestDirectory(t *testing.T) (*lecturer.Directory, *memory.Collection[lecturer.Lecturer]) {
	t.Helper()
	store := memory.NewCollection[lecturer.Lecturer]()
	d, err := lecturer.NewDirectory(context.Background(), store, zerolog.Nop())
	require.NoError(t, err)
	return d, store
}

func validRegistration() lecturer.RegisterInput {
	return lecturer.RegisterInput{
		LecturerID: "L001",
		FullName:   "A. Mokoena",
		Email:      "a.mokoena@uni.ac.za",
		Password:   "s3cret",
	}
}

// =============================================================================
// REGISTRATION
// =============================================================================

func TestRegister_HashesPasswordAndPersists(t *testing.T) {
	d, store := newTestDirectory(t)

	rec, err := d.Register(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.Equal(t, lecturer.HashPassword("s3cret"), rec.PasswordHash)
	assert.NotContains(t, rec.PasswordHash, "s3cret", "plaintext must never be stored")

	persisted, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, rec, persisted[0])
}

func TestRegister_MissingField_NoMutation(t *testing.T) {
	blank := func(mutate func(*lecturer.RegisterInput)) lecturer.RegisterInput {
		in := validRegistration()
		mutate(&in)
		return in
	}
	cases := map[string]lecturer.RegisterInput{
		"id":       blank(func(in *lecturer.RegisterInput) { in.LecturerID = "" }),
		"name":     blank(func(in *lecturer.RegisterInput) { in.FullName = "  " }),
		"email":    blank(func(in *lecturer.RegisterInput) { in.Email = "" }),
		"password": blank(func(in *lecturer.RegisterInput) { in.Password = "" }),
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			d, store := newTestDirectory(t)

			_, err := d.Register(context.Background(), in)

			var ve *lecturer.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Zero(t, store.Len())
		})
	}
}

func TestRegister_DuplicateID_CollectionUnchanged(t *testing.T) {
	// GIVEN: L001 is registered
	// WHEN: Registering L001 again
	// THEN: ErrDuplicateLecturerID, collection size unchanged

	d, store := newTestDirectory(t)
	ctx := context.Background()
	_, err := d.Register(ctx, validRegistration())
	require.NoError(t, err)

	in := validRegistration()
	in.FullName = "Another Person"
	_, err = d.Register(ctx, in)

	assert.ErrorIs(t, err, lecturer.ErrDuplicateLecturerID)
	assert.Equal(t, 1, store.Len())
}

func TestRegister_IDMatchIsCaseSensitive(t *testing.T) {
	d, _ := newTestDirectory(t)
	ctx := context.Background()
	_, err := d.Register(ctx, validRegistration())
	require.NoError(t, err)

	in := validRegistration()
	in.LecturerID = "l001"
	_, err = d.Register(ctx, in)

	assert.NoError(t, err, "ids differing only in case are distinct")
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

func TestAuthenticate_Success(t *testing.T) {
	d, _ := newTestDirectory(t)
	_, err := d.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	rec, err := d.Authenticate("L001", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "A. Mokoena", rec.FullName)
}

func TestAuthenticate_WrongPasswordAndUnknownID_SameError(t *testing.T) {
	// A single generic failure for both cases, so a caller cannot tell which
	// of the two was wrong.
	d, _ := newTestDirectory(t)
	_, err := d.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, wrongPassword := d.Authenticate("L001", "nope")
	_, unknownID := d.Authenticate("L999", "s3cret")

	assert.ErrorIs(t, wrongPassword, lecturer.ErrAuthenticationFailed)
	assert.ErrorIs(t, unknownID, lecturer.ErrAuthenticationFailed)
}

// =============================================================================
// LOOKUP AND HASHING
// =============================================================================

func TestFullNameOf(t *testing.T) {
	d, _ := newTestDirectory(t)
	_, err := d.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	name, ok := d.FullNameOf("L001")
	assert.True(t, ok)
	assert.Equal(t, "A. Mokoena", name)

	_, ok = d.FullNameOf("L999")
	assert.False(t, ok)
}

func TestHashPassword_DeterministicBase64Digest(t *testing.T) {
	a := lecturer.HashPassword("s3cret")
	b := lecturer.HashPassword("s3cret")
	other := lecturer.HashPassword("s3cret!")

	assert.Equal(t, a, b, "same input must hash identically")
	assert.NotEqual(t, a, other)
	// base64 of a 256-bit digest is 44 characters
	assert.Len(t, a, 44)
}
