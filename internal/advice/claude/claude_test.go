package claude

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/internal/advice"
	"wedding-planner/internal/models"
)

func text(t *testing.T, m anthropic.MessageParam, i int) string {
	t.Helper()
	require.Greater(t, len(m.Content), i)
	require.NotNil(t, m.Content[i].OfText)
	return m.Content[i].OfText.Text
}

func TestMessagesDropsLeadingGreeting(t *testing.T) {
	msgs := Messages(advice.Request{
		History: []advice.Turn{{Role: models.RoleModel, Content: advice.Greeting}},
		Prompt:  "Hi!",
	})

	require.Len(t, msgs, 1)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, "Hi!", text(t, msgs[0], 0))
}

func TestMessagesAlternate(t *testing.T) {
	msgs := Messages(advice.Request{
		History: []advice.Turn{
			{Role: models.RoleModel, Content: advice.Greeting},
			{Role: models.RoleUser, Content: "first"},
			{Role: models.RoleModel, Content: "reply"},
			{Role: models.RoleUser, Content: "second"},
		},
		Prompt: "third",
	})

	require.Len(t, msgs, 3)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, "first", text(t, msgs[0], 0))
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)
	assert.Equal(t, "reply", text(t, msgs[1], 0))
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[2].Role)
	assert.Equal(t, "second\n\nthird", text(t, msgs[2], 0))
}

func TestMessagesImageFirst(t *testing.T) {
	msgs := Messages(advice.Request{
		Prompt: advice.PhotoPrompt,
		Image:  &advice.InlineImage{MIMEType: "image/png", Data: []byte("png")},
	})

	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Content, 2)
	assert.NotNil(t, msgs[0].Content[0].OfImage)
	assert.Equal(t, advice.PhotoPrompt, text(t, msgs[0], 1))
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New("", "")
	assert.Error(t, err)

	c, err := New("key", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.model)
}
