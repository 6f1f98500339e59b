package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"google.golang.org/protobuf/proto"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		in, country, want string
	}{
		{"054-123-4567", "972", "972541234567"},
		{"+972 54 123 4567", "972", "972541234567"},
		{"(972) 054-1234567", "972", "972541234567"},
		{"00972541234567", "972", "972541234567"},
		{"+1 (415) 555-0100", "1", "14155550100"},
		{"0541234567", "", "0541234567"},
		{"", "972", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhoneNumber(tt.in, tt.country), tt.in)
	}
}

func TestMessageText(t *testing.T) {
	assert.Equal(t, "yes", MessageText(&waE2E.Message{Conversation: proto.String("yes")}))
	assert.Equal(t, "we'll be there", MessageText(&waE2E.Message{
		ExtendedTextMessage: &waE2E.ExtendedTextMessage{Text: proto.String("we'll be there")},
	}))
	assert.Empty(t, MessageText(&waE2E.Message{}))
}
