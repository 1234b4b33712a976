package cards

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmhouse/wallet-api/internal/domain"
	"github.com/dmhouse/wallet-api/internal/mocks"
	"github.com/dmhouse/wallet-api/internal/store"
)

// futureExpiry returns an MM/YY expiration safely in the future.
func futureExpiry() string {
	future := time.Now().UTC().AddDate(2, 0, 0)
	return fmt.Sprintf("%02d/%02d", int(future.Month()), future.Year()%100)
}

func TestAssociateStoresNormalizedNumber(t *testing.T) {
	t.Parallel()
	cards := mocks.NewMockCardStore()
	svc := NewService(cards, nil)
	accountID := uuid.New()

	card, err := svc.Associate(context.Background(), accountID, "4111 1111 1111 1111", futureExpiry())
	require.NoError(t, err)

	assert.Equal(t, "4111111111111111", card.Number)
	assert.Equal(t, domain.ProviderVisa, card.Provider)
	assert.Equal(t, "**** **** **** 1111", card.Masked())
	require.Len(t, cards.Cards, 1)
}

func TestAssociateDuplicateSameAccount(t *testing.T) {
	t.Parallel()
	cards := mocks.NewMockCardStore()
	svc := NewService(cards, nil)
	accountID := uuid.New()

	_, err := svc.Associate(context.Background(), accountID, "5500111122223333", futureExpiry())
	require.NoError(t, err)

	_, err = svc.Associate(context.Background(), accountID, "5500 1111 2222 3333", futureExpiry())
	assert.ErrorIs(t, err, store.ErrCardLinkedToAccount)
}

func TestAssociateDuplicateOtherAccount(t *testing.T) {
	t.Parallel()
	cards := mocks.NewMockCardStore()
	svc := NewService(cards, nil)

	_, err := svc.Associate(context.Background(), uuid.New(), "5500111122223333", futureExpiry())
	require.NoError(t, err)

	_, err = svc.Associate(context.Background(), uuid.New(), "5500111122223333", futureExpiry())
	assert.ErrorIs(t, err, store.ErrCardLinkedElsewhere)
}

func TestAssociateValidation(t *testing.T) {
	t.Parallel()
	cards := mocks.NewMockCardStore()
	svc := NewService(cards, nil)
	accountID := uuid.New()

	_, err := svc.Associate(context.Background(), accountID, "4111", futureExpiry())
	assert.ErrorIs(t, err, domain.ErrCardNumberTooShort)

	_, err = svc.Associate(context.Background(), accountID, "4111111111111111", "01/20")
	assert.ErrorIs(t, err, domain.ErrInvalidExpiration)

	assert.Empty(t, cards.Cards)
}

func TestGetAndDeleteScopedToAccount(t *testing.T) {
	t.Parallel()
	cards := mocks.NewMockCardStore()
	svc := NewService(cards, nil)
	owner := uuid.New()
	stranger := uuid.New()

	card, err := svc.Associate(context.Background(), owner, "6011000990139424", futureExpiry())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), stranger, card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	err = svc.Delete(context.Background(), stranger, card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	require.Len(t, cards.Cards, 1, "foreign delete must not remove the card")

	require.NoError(t, svc.Delete(context.Background(), owner, card.ID))
	assert.Empty(t, cards.Cards)
}

func TestListReturnsOnlyOwnCards(t *testing.T) {
	t.Parallel()
	cards := mocks.NewMockCardStore()
	svc := NewService(cards, nil)
	owner := uuid.New()

	_, err := svc.Associate(context.Background(), owner, "4111111111111111", futureExpiry())
	require.NoError(t, err)
	_, err = svc.Associate(context.Background(), uuid.New(), "340000000000009", futureExpiry())
	require.NoError(t, err)

	list, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, owner, list[0].AccountID)
}
