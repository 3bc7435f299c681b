package contact

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/Zachkp/cyber-portfolio/internal/store"
)

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":            true,
		"first.last@ex.org": true,
		"a@b":               false,
		"a b@c.com":         false,
		"":                  false,
		"a@@b.co":           false,
		"@b.co":             false,
	}
	for in, want := range cases {
		if got := ValidEmail(in); got != want {
			t.Errorf("ValidEmail(%q): Expected %v, got %v", in, want, got)
		}
	}
}

func TestValidateOrder(t *testing.T) {
	cases := []struct {
		sub   Submission
		field string
		msg   string
	}{
		{Submission{Name: "", Email: "x@y.com", Message: "hi"}, "name", MsgNameRequired},
		{Submission{Name: "   ", Email: "bad", Message: ""}, "name", MsgNameRequired},
		{Submission{Name: "Ada", Email: "bad", Message: ""}, "email", MsgEmailInvalid},
		{Submission{Name: "Ada", Email: "x@y.com", Message: " \n"}, "message", MsgMessageRequired},
	}
	for i, tc := range cases {
		err := tc.sub.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d: Expected ValidationError, got %v", i, err)
		}
		if verr.Field != tc.field || verr.Message != tc.msg {
			t.Errorf("case %d: Expected %s/%q, got %s/%q", i, tc.field, tc.msg, verr.Field, verr.Message)
		}
	}

	if err := (Submission{Name: "Ada", Email: "x@y.com", Message: "hi"}).Validate(); err != nil {
		t.Errorf("Expected valid submission, got %v", err)
	}
}

type memArchive struct {
	saved    []store.Message
	statuses map[int64]string
}

func (a *memArchive) SaveMessage(_ context.Context, m store.Message) (int64, error) {
	a.saved = append(a.saved, m)
	return int64(len(a.saved)), nil
}

func (a *memArchive) SetMessageStatus(_ context.Context, id int64, status string) error {
	if a.statuses == nil {
		a.statuses = make(map[int64]string)
	}
	a.statuses[id] = status
	return nil
}

func TestSubmitRejectsWithoutSending(t *testing.T) {
	sent := 0
	archive := &memArchive{}
	svc := NewService(SenderFunc(func(context.Context, Submission) error {
		sent++
		return nil
	}), archive, nil)

	err := svc.Submit(context.Background(), Submission{Name: "", Email: "x@y.com", Message: "hi"})
	n := Notify(err)
	if n.Kind != KindError || n.Message != MsgNameRequired {
		t.Errorf("Expected name-required error toast, got %+v", n)
	}
	if sent != 0 || len(archive.saved) != 0 {
		t.Errorf("Expected nothing sent or archived, got %d/%d", sent, len(archive.saved))
	}
}

func TestSubmitDeliveredAndFailed(t *testing.T) {
	archive := &memArchive{}
	ok := NewService(SenderFunc(func(context.Context, Submission) error { return nil }), archive, nil)

	sub := Submission{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	if err := ok.Submit(context.Background(), sub); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if n := Notify(nil); n.Kind != KindSuccess || n.Message != MsgSent || n.TTLMillis() != 3000 {
		t.Errorf("Expected success toast, got %+v", n)
	}
	if archive.statuses[1] != store.StatusDelivered {
		t.Errorf("Expected delivered status, got %q", archive.statuses[1])
	}

	boom := errors.New("network error")
	failing := NewService(SenderFunc(func(context.Context, Submission) error { return boom }), archive, nil)
	err := failing.Submit(context.Background(), sub)

	var terr *TransportError
	if !errors.As(err, &terr) || !errors.Is(err, boom) {
		t.Fatalf("Expected TransportError wrapping cause, got %v", err)
	}
	if n := Notify(err); n.Kind != KindError || n.Message != MsgSendFailed {
		t.Errorf("Expected transport toast, got %+v", n)
	}
	if archive.statuses[2] != store.StatusFailed {
		t.Errorf("Expected failed status, got %q", archive.statuses[2])
	}
}

func TestSMTPSender(t *testing.T) {
	unconfigured := NewSMTPSender("smtp.example.com", "587", "", "", "")
	if err := unconfigured.Send(context.Background(), Submission{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}

	s := NewSMTPSender("smtp.example.com", "587", "me@example.com", "secret", "")
	var gotAddr string
	var gotTo []string
	var gotMsg string
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	err := s.Send(context.Background(), Submission{Name: "Eve\r\nBcc: x@y.z", Email: "eve@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("Expected host:port, got %s", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "me@example.com" {
		t.Errorf("Expected fallback recipient, got %v", gotTo)
	}
	headers, _, _ := strings.Cut(gotMsg, "\r\n\r\n")
	if strings.Contains(headers, "\r\nBcc:") {
		t.Error("Expected header injection to be neutralised")
	}
	if !strings.Contains(gotMsg, "Reply-To: eve@example.com") {
		t.Errorf("Expected Reply-To header, got %q", gotMsg)
	}

	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("dial tcp: refused") }
	if err := s.Send(context.Background(), Submission{Name: "a", Email: "a@b.co", Message: "m"}); err == nil {
		t.Error("Expected send error")
	}
}
