package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

func newMsgSvc(messages *stubMessageRepo, profiles *stubProfileRepo, inbox *stubInbox) *MessageService {
	svc := NewMessageService(messages, profiles, inbox, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func seedProfile(repo *stubProfileRepo, id string, accountType domain.AccountType) {
	repo.byID[id] = &domain.Profile{
		ID:          id,
		Email:       id + "@example.com",
		FullName:    "Profile " + id,
		AccountType: accountType,
	}
}

func seedMessage(repo *stubMessageRepo, id, sender, receiver string, read bool, at time.Time) {
	repo.msgs = append(repo.msgs, &domain.Message{
		ID:             id,
		ConversationID: domain.ConversationID(sender, receiver),
		SenderID:       sender,
		ReceiverID:     receiver,
		Content:        "message " + id,
		Read:           read,
		CreatedAt:      at,
	})
}

func TestMessageService_Send_PublishesNotice(t *testing.T) {
	profiles := newStubProfileRepo()
	seedProfile(profiles, poster.ProfileID, domain.AccountProcurement)
	inbox := &stubInbox{}
	svc := newMsgSvc(&stubMessageRepo{}, profiles, inbox)

	msg, err := svc.Send(context.Background(), contractor, ports.SendMessageInput{
		ReceiverID: poster.ProfileID,
		Subject:    "Question about opp-1",
		Content:    "Is the deadline firm?",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.ConversationID != domain.ConversationID(contractor.ProfileID, poster.ProfileID) {
		t.Errorf("wrong conversation id: %s", msg.ConversationID)
	}
	if msg.Read {
		t.Error("new messages start unread")
	}
	if len(inbox.published) != 1 || inbox.receivers[0] != poster.ProfileID {
		t.Fatalf("expected one notice to the receiver, got %v", inbox.receivers)
	}
	if inbox.published[0].MessageID != msg.ID {
		t.Error("notice must reference the stored message")
	}
}

func TestMessageService_Send_TruncatesPreview(t *testing.T) {
	profiles := newStubProfileRepo()
	seedProfile(profiles, poster.ProfileID, domain.AccountProcurement)
	inbox := &stubInbox{}
	svc := newMsgSvc(&stubMessageRepo{}, profiles, inbox)

	long := strings.Repeat("x", previewLen*2)
	if _, err := svc.Send(context.Background(), contractor, ports.SendMessageInput{
		ReceiverID: poster.ProfileID, Content: long,
	}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got := inbox.published[0].Preview; len(got) != previewLen {
		t.Errorf("preview length = %d, want %d", len(got), previewLen)
	}
}

func TestMessageService_Send_PreviewKeepsRuneBoundary(t *testing.T) {
	profiles := newStubProfileRepo()
	seedProfile(profiles, poster.ProfileID, domain.AccountProcurement)
	inbox := &stubInbox{}
	svc := newMsgSvc(&stubMessageRepo{}, profiles, inbox)

	// "é" is two bytes; the leading "a" shifts every rune so byte previewLen
	// lands mid-rune
	long := "a" + strings.Repeat("é", previewLen)
	if _, err := svc.Send(context.Background(), contractor, ports.SendMessageInput{
		ReceiverID: poster.ProfileID, Content: long,
	}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	got := inbox.published[0].Preview
	if !utf8.ValidString(got) {
		t.Fatalf("preview is not valid utf-8: %q", got)
	}
	if !strings.HasPrefix(long, got) {
		t.Errorf("preview must be a prefix of the content: %q", got)
	}
	if len(got) > previewLen {
		t.Errorf("preview length = %d, want at most %d", len(got), previewLen)
	}
}

func TestMessageService_Send_PushFailureDoesNotFailWrite(t *testing.T) {
	profiles := newStubProfileRepo()
	seedProfile(profiles, poster.ProfileID, domain.AccountProcurement)
	messages := &stubMessageRepo{}
	svc := newMsgSvc(messages, profiles, &stubInbox{publishErr: errors.New("redis down")})

	if _, err := svc.Send(context.Background(), contractor, ports.SendMessageInput{
		ReceiverID: poster.ProfileID, Content: "hello",
	}); err != nil {
		t.Fatalf("push failure must not fail the send: %v", err)
	}
	if len(messages.msgs) != 1 {
		t.Error("message must still be persisted")
	}
}

func TestMessageService_Send_Validation(t *testing.T) {
	profiles := newStubProfileRepo()
	seedProfile(profiles, poster.ProfileID, domain.AccountProcurement)
	svc := newMsgSvc(&stubMessageRepo{}, profiles, &stubInbox{})

	cases := []struct {
		name  string
		input ports.SendMessageInput
		want  error
	}{
		{"empty content", ports.SendMessageInput{ReceiverID: poster.ProfileID}, domain.ErrInvalidMessage},
		{"empty receiver", ports.SendMessageInput{Content: "hi"}, domain.ErrInvalidMessage},
		{"self message", ports.SendMessageInput{ReceiverID: contractor.ProfileID, Content: "hi"}, domain.ErrInvalidMessage},
		{"unknown receiver", ports.SendMessageInput{ReceiverID: "ghost", Content: "hi"}, domain.ErrProfileNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Send(context.Background(), contractor, tc.input); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMessageService_UnreadCount(t *testing.T) {
	messages := &stubMessageRepo{}
	self := contractor.ProfileID
	seedMessage(messages, "m1", poster.ProfileID, self, true, fixedNow)
	seedMessage(messages, "m2", poster.ProfileID, self, true, fixedNow.Add(time.Minute))
	seedMessage(messages, "m3", poster.ProfileID, self, false, fixedNow.Add(2*time.Minute))
	seedMessage(messages, "m4", self, poster.ProfileID, false, fixedNow.Add(3*time.Minute))
	svc := newMsgSvc(messages, newStubProfileRepo(), &stubInbox{})

	n, err := svc.UnreadCount(context.Background(), contractor)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("unread = %d, want 1 (own sent messages never count)", n)
	}
}

func TestMessageService_GetConversation_MarksRead(t *testing.T) {
	messages := &stubMessageRepo{}
	self := contractor.ProfileID
	convID := domain.ConversationID(self, poster.ProfileID)
	seedMessage(messages, "m1", poster.ProfileID, self, false, fixedNow)
	seedMessage(messages, "m2", self, poster.ProfileID, false, fixedNow.Add(time.Minute))
	svc := newMsgSvc(messages, newStubProfileRepo(), &stubInbox{})

	msgs, err := svc.GetConversation(context.Background(), contractor, convID)
	if err != nil {
		t.Fatalf("get conversation failed: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "m1" {
		t.Fatalf("expected thread oldest first, got %d", len(msgs))
	}
	if !msgs[0].Read {
		t.Error("returned message to the caller must be read")
	}

	n, _ := svc.UnreadCount(context.Background(), contractor)
	if n != 0 {
		t.Errorf("unread after opening the thread = %d, want 0", n)
	}

	// the counterparty's unread state is untouched
	n, _ = svc.UnreadCount(context.Background(), poster)
	if n != 1 {
		t.Errorf("counterparty unread = %d, want 1", n)
	}
}

func TestMessageService_GetConversation_ParticipantOnly(t *testing.T) {
	messages := &stubMessageRepo{}
	convID := domain.ConversationID("alice", "bob")
	seedMessage(messages, "m1", "alice", "bob", false, fixedNow)
	svc := newMsgSvc(messages, newStubProfileRepo(), &stubInbox{})

	if _, err := svc.GetConversation(context.Background(), contractor, convID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for outsiders, got %v", err)
	}
}

func TestMessageService_GetConversation_MarkFailurePropagates(t *testing.T) {
	messages := &stubMessageRepo{markErr: errors.New("write timeout")}
	self := contractor.ProfileID
	convID := domain.ConversationID(self, poster.ProfileID)
	seedMessage(messages, "m1", poster.ProfileID, self, false, fixedNow)
	svc := newMsgSvc(messages, newStubProfileRepo(), &stubInbox{})

	if _, err := svc.GetConversation(context.Background(), contractor, convID); err == nil {
		t.Error("mark-read failure must surface, not return a half-read thread")
	}
}

func TestMessageService_ListConversations_GroupsAndSorts(t *testing.T) {
	messages := &stubMessageRepo{}
	self := contractor.ProfileID
	seedMessage(messages, "m1", "alice", self, false, fixedNow)
	seedMessage(messages, "m2", self, "alice", false, fixedNow.Add(time.Minute))
	seedMessage(messages, "m3", "bob", self, false, fixedNow.Add(2*time.Minute))
	seedMessage(messages, "m4", "alice", "bob", false, fixedNow.Add(3*time.Minute))
	svc := newMsgSvc(messages, newStubProfileRepo(), &stubInbox{})

	summaries, err := svc.ListConversations(context.Background(), contractor)
	if err != nil {
		t.Fatalf("list conversations failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(summaries))
	}
	if summaries[0].CounterpartyID != "bob" {
		t.Errorf("most recent conversation first, got %s", summaries[0].CounterpartyID)
	}
	if summaries[0].LastMessage.ID != "m3" {
		t.Errorf("last message = %s, want m3", summaries[0].LastMessage.ID)
	}

	alice := summaries[1]
	if alice.CounterpartyID != "alice" {
		t.Fatalf("expected alice thread, got %s", alice.CounterpartyID)
	}
	if alice.UnreadCount != 1 {
		t.Errorf("alice unread = %d, want 1 (own replies don't count)", alice.UnreadCount)
	}
	if alice.LastMessage.ID != "m2" {
		t.Errorf("alice last message = %s, want m2", alice.LastMessage.ID)
	}
}
