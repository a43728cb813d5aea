package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-assistant/internal/chat"
	"ai-assistant/internal/logging"
)

type fakeClient struct {
	reply   Reply
	err     error
	called  int
	lastReq Request
}

func (f *fakeClient) Generate(_ context.Context, req Request) (Reply, error) {
	f.called++
	f.lastReq = req
	return f.reply, f.err
}

func TestRouterDispatchesByFamily(t *testing.T) {
	turnArray := &fakeClient{reply: Reply{Content: "openai reply", Usage: &Usage{Family: FamilyTurnArray}}}
	systemTurn := &fakeClient{reply: Reply{Content: "claude reply", Usage: &Usage{Family: FamilySystemTurn}}}
	r := NewRouter(turnArray, systemTurn, logging.Nop())

	res := r.Send(context.Background(), Request{Model: "claude-sonnet-4-5-20250929"})
	assert.Equal(t, "claude reply", res.Text)
	assert.Equal(t, 1, systemTurn.called)
	assert.Equal(t, 0, turnArray.called)

	res = r.Send(context.Background(), Request{Model: "gpt-4o"})
	assert.Equal(t, "openai reply", res.Text)
	assert.Equal(t, 1, turnArray.called)
}

func TestRouterUnknownModelUsesTurnArrayFallback(t *testing.T) {
	turnArray := &fakeClient{reply: Reply{Content: "ok", Usage: &Usage{Family: FamilyTurnArray}}}
	systemTurn := &fakeClient{}
	r := NewRouter(turnArray, systemTurn, logging.Nop())

	r.Send(context.Background(), Request{Model: "foo-model"})
	assert.Equal(t, 1, turnArray.called)
	assert.Equal(t, 0, systemTurn.called)
}

func TestRouterDegradesErrorToDisplayableReply(t *testing.T) {
	turnArray := &fakeClient{err: errors.New("connection refused")}
	r := NewRouter(turnArray, &fakeClient{}, logging.Nop())

	res := r.Send(context.Background(), Request{Model: "gpt-4o", Language: "ru"})
	require.True(t, res.Failed)
	assert.Nil(t, res.Usage)
	assert.Contains(t, res.Text, "Ошибка при получении ответа")
	assert.Contains(t, res.Text, "connection refused")
}

func TestRouterErrorReplyFollowsLanguage(t *testing.T) {
	systemTurn := &fakeClient{err: errors.New("quota exceeded")}
	r := NewRouter(&fakeClient{}, systemTurn, logging.Nop())

	res := r.Send(context.Background(), Request{Model: "claude-3", Language: "en"})
	require.True(t, res.Failed)
	assert.Contains(t, res.Text, "Failed to get a response")
}

func TestRouterPassesUsageThrough(t *testing.T) {
	usage := &Usage{
		Family:       FamilySystemTurn,
		InputTokens:  120,
		OutputTokens: 45,
		StopReason:   "end_turn",
	}
	systemTurn := &fakeClient{reply: Reply{Content: "hi", Usage: usage}}
	r := NewRouter(&fakeClient{}, systemTurn, logging.Nop())

	res := r.Send(context.Background(), Request{Model: "sonnet"})
	require.False(t, res.Failed)
	assert.Equal(t, usage, res.Usage)
}

func TestRouterForwardsTurnsVerbatim(t *testing.T) {
	turnArray := &fakeClient{reply: Reply{Content: "ok"}}
	r := NewRouter(turnArray, &fakeClient{}, logging.Nop())

	turns := []chat.Turn{
		{Role: chat.RoleSystem, Content: "s"},
		{Role: chat.RoleUser, Content: "u"},
	}
	r.Send(context.Background(), Request{Model: "gpt-4o", Turns: turns, Temperature: 0.5})
	assert.Equal(t, turns, turnArray.lastReq.Turns)
	assert.InDelta(t, 0.5, turnArray.lastReq.Temperature, 1e-9)
}
