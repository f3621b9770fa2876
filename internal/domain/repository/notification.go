package repository

import (
	"context"
)

// MessageSender delivers text messages to a chat identity. It is the primary
// notification channel.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// VoiceCaller initiates best-effort voice alerts. Implementations report
// their own readiness; an uninitialized caller only disables the channel.
type VoiceCaller interface {
	IsInitialized() bool
	// CallRecipients rings each recipient in turn. A failure for one
	// recipient must not prevent calling the others.
	CallRecipients(ctx context.Context, userIDs []int64, usernames []string) error
}
