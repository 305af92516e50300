package repository

import (
	"context"
	"testing"

	"github.com/mobiliza/peticoes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSignature(petitionID, email string) *model.Signature {
	return &model.Signature{
		PetitionID:    petitionID,
		FullName:      "Maria Silva",
		Email:         email,
		City:          "Campinas",
		State:         "SP",
		IpAddress:     "203.0.113.7",
		UserAgent:     "test-agent",
		TermsAccepted: true,
		Verified:      true,
		Protocol:      "PET-abc123",
	}
}

func TestSignatureCreate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	petition, err := repo.Petition.Create(ctx, nil, newTestPetition("Park", "park"))
	require.NoError(t, err)

	created, err := repo.Signature.Create(ctx, nil, newTestSignature(petition.ID, "maria@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, petition.ID, created.PetitionID)
	assert.Equal(t, "203.0.113.7", created.IpAddress)
}

func TestSignatureDuplicateEmailPerPetition(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	petition, err := repo.Petition.Create(ctx, nil, newTestPetition("Park", "park"))
	require.NoError(t, err)
	other, err := repo.Petition.Create(ctx, nil, newTestPetition("River", "river"))
	require.NoError(t, err)

	_, err = repo.Signature.Create(ctx, nil, newTestSignature(petition.ID, "maria@example.com"))
	require.NoError(t, err)

	_, err = repo.Signature.Create(ctx, nil, newTestSignature(petition.ID, "maria@example.com"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// the same email may sign a different petition
	_, err = repo.Signature.Create(ctx, nil, newTestSignature(other.ID, "maria@example.com"))
	assert.NoError(t, err)
}

func TestSignatureListByPetitionPaging(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	petition, err := repo.Petition.Create(ctx, nil, newTestPetition("Park", "park"))
	require.NoError(t, err)

	emails := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com", "e@example.com"}
	for _, email := range emails {
		_, err := repo.Signature.Create(ctx, nil, newTestSignature(petition.ID, email))
		require.NoError(t, err)
	}

	first, total, err := repo.Signature.ListByPetition(ctx, nil, petition.ID, nil, nil, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, first, 2)

	last, total, err := repo.Signature.ListByPetition(ctx, nil, petition.ID, nil, nil, 3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, last, 1)
}

func TestSignatureStats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	petition, err := repo.Petition.Create(ctx, nil, newTestPetition("Park", "park"))
	require.NoError(t, err)
	other, err := repo.Petition.Create(ctx, nil, newTestPetition("River", "river"))
	require.NoError(t, err)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := repo.Signature.Create(ctx, nil, newTestSignature(petition.ID, email))
		require.NoError(t, err)
	}
	_, err = repo.Signature.Create(ctx, nil, newTestSignature(other.ID, "z@example.com"))
	require.NoError(t, err)

	stats, err := repo.Signature.Stats(ctx, nil, petition.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Total)
	require.Len(t, stats.ByDay, 30)

	var sum int64
	for _, day := range stats.ByDay {
		sum += day.Count
	}
	assert.EqualValues(t, 3, sum)
}

func TestSignatureListSortRejectsUnknownField(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Signature.List(ctx, nil, "-cpf")
	assert.ErrorIs(t, err, ErrInvalidSortField)
}
