package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"lumina-chat/internal/domain/message"
	lumina_errors "lumina-chat/pkg/errors"
	"lumina-chat/pkg/retry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeMessageRepo struct {
	created []message.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *message.Message) error {
	f.created = append(f.created, *m)
	return nil
}

func (f *fakeMessageRepo) GetUserMessages(ctx context.Context, userID uuid.UUID) ([]message.Message, error) {
	var out []message.Message
	for _, m := range f.created {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeModel struct {
	calls   int
	replies []string
	errs    []error
}

func (f *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", f.errs[idx]
	}
	if idx < len(f.replies) {
		return f.replies[idx], nil
	}
	return "reply", nil
}

func newTestChatService(repo *fakeMessageRepo, model *fakeModel) *ChatService {
	return NewChatService(repo, model, NewTagPicker(42), 3, time.Millisecond, nil)
}

func validChatInput() ChatInput {
	return ChatInput{
		UserID:       uuid.New(),
		Message:      "How do I reverse a slice?",
		SystemPrompt: "You are a senior Go engineer.",
		Mode:         message.ModeCoder,
	}
}

// --- handle chat ---

func TestHandleChat_PersistsBothTurns(t *testing.T) {
	t.Parallel()

	repo := &fakeMessageRepo{}
	model := &fakeModel{replies: []string{"Use slices.Reverse."}}
	svc := newTestChatService(repo, model)

	in := validChatInput()
	res, err := svc.HandleChat(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Use slices.Reverse.", res.Reply)

	require.Len(t, repo.created, 2)

	userTurn, modelTurn := repo.created[0], repo.created[1]

	assert.True(t, userTurn.IsUser)
	assert.Equal(t, in.Message, userTurn.Text)
	assert.Equal(t, []string{message.UserTag}, userTurn.Tags)

	assert.False(t, modelTurn.IsUser)
	assert.Equal(t, "Use slices.Reverse.", modelTurn.Text)
	assert.Equal(t, modelTurn.ID, res.MessageID)

	for _, m := range repo.created {
		assert.Equal(t, in.UserID, m.UserID)
		assert.Equal(t, message.ModeCoder, m.Mode)
	}

	// Model tags: 1-2 values, all from the fixed vocabulary.
	require.GreaterOrEqual(t, len(modelTurn.Tags), 1)
	require.LessOrEqual(t, len(modelTurn.Tags), 2)
	vocab := map[string]bool{}
	for _, tag := range message.TagVocabulary {
		vocab[tag] = true
	}
	for _, tag := range modelTurn.Tags {
		assert.True(t, vocab[tag], "tag %q not in vocabulary", tag)
	}
}

func TestHandleChat_RetriesRateLimitThenSucceeds(t *testing.T) {
	t.Parallel()

	repo := &fakeMessageRepo{}
	model := &fakeModel{
		errs:    []error{lumina_errors.ErrRateLimited, lumina_errors.ErrRateLimited},
		replies: []string{"", "", "third time lucky"},
	}
	svc := newTestChatService(repo, model)

	res, err := svc.HandleChat(context.Background(), validChatInput())
	require.NoError(t, err)
	assert.Equal(t, "third time lucky", res.Reply)
	assert.Equal(t, 3, model.calls)
}

func TestHandleChat_RateLimitedAfterRetries(t *testing.T) {
	t.Parallel()

	repo := &fakeMessageRepo{}
	model := &fakeModel{
		errs: []error{lumina_errors.ErrRateLimited, lumina_errors.ErrRateLimited, lumina_errors.ErrRateLimited},
	}
	svc := newTestChatService(repo, model)

	_, err := svc.HandleChat(context.Background(), validChatInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrMaxRetries)
	assert.ErrorIs(t, err, lumina_errors.ErrRateLimited)
	assert.Equal(t, 3, model.calls)

	// Nothing may be persisted when the upstream call failed.
	assert.Empty(t, repo.created)
}

func TestHandleChat_UpstreamAuthNotRetried(t *testing.T) {
	t.Parallel()

	repo := &fakeMessageRepo{}
	model := &fakeModel{errs: []error{lumina_errors.ErrUpstreamAuth}}
	svc := newTestChatService(repo, model)

	_, err := svc.HandleChat(context.Background(), validChatInput())
	assert.ErrorIs(t, err, lumina_errors.ErrUpstreamAuth)
	assert.Equal(t, 1, model.calls)
	assert.Empty(t, repo.created)
}

func TestHandleChat_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestChatService(&fakeMessageRepo{}, &fakeModel{})

	cases := map[string]func(*ChatInput){
		"empty message": func(in *ChatInput) { in.Message = "" },
		"empty prompt":  func(in *ChatInput) { in.SystemPrompt = "" },
		"empty mode":    func(in *ChatInput) { in.Mode = "" },
		"unknown mode":  func(in *ChatInput) { in.Mode = "poet" },
		"nil user":      func(in *ChatInput) { in.UserID = uuid.Nil },
	}
	for name, mutate := range cases {
		in := validChatInput()
		mutate(&in)
		_, err := svc.HandleChat(context.Background(), in)
		assert.ErrorIs(t, err, lumina_errors.ErrInvalidInput, name)
	}
}

// --- messages ---

func TestMessages_OrderedByCreationTime(t *testing.T) {
	t.Parallel()

	repo := &fakeMessageRepo{}
	userID := uuid.New()
	base := time.Now()

	// Interleaved inserts, deliberately out of chronological order.
	for _, offset := range []time.Duration{3 * time.Second, 1 * time.Second, 2 * time.Second} {
		err := repo.Create(context.Background(), &message.Message{
			ID:        uuid.New(),
			UserID:    userID,
			Text:      "turn",
			Mode:      message.ModeAssistant,
			CreatedAt: base.Add(offset),
		})
		require.NoError(t, err)
	}

	svc := newTestChatService(repo, &fakeModel{})
	msgs, err := svc.Messages(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i-1].CreatedAt.Before(msgs[i].CreatedAt), "turns not ascending at %d", i)
	}
}

// --- tag picker ---

func TestTagPicker_DeterministicBySeed(t *testing.T) {
	t.Parallel()

	a, b := NewTagPicker(7), NewTagPicker(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Pick(), b.Pick())
	}
}

func TestTagPicker_BoundsAndVocabulary(t *testing.T) {
	t.Parallel()

	vocab := map[string]bool{}
	for _, tag := range message.TagVocabulary {
		vocab[tag] = true
	}

	picker := NewTagPicker(time.Now().UnixNano())
	for i := 0; i < 100; i++ {
		tags := picker.Pick()
		require.GreaterOrEqual(t, len(tags), 1)
		require.LessOrEqual(t, len(tags), 2)
		seen := map[string]bool{}
		for _, tag := range tags {
			assert.True(t, vocab[tag], "tag %q not in vocabulary", tag)
			assert.False(t, seen[tag], "duplicate tag %q in one pick", tag)
			seen[tag] = true
		}
	}
}
