package hub

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

// Lookup resolves a movie title to a direct stream URL.
type Lookup interface {
	Lookup(ctx context.Context, title string) (string, error)
}

// RelayRequest is a classified chat message ready for the relay.
type RelayRequest struct {
	Kind     domain.MessageKind
	Payload  string
	Original string
}

// Classifier turns raw chat text into a RelayRequest. It runs in the
// connection's read goroutine, so a slow media lookup never blocks the
// room sequencer.
type Classifier struct {
	AssistantName string
	MediaTrigger  string
	EmbedBase     string
	Resolver      Lookup
	LookupTimeout time.Duration
}

// NewClassifier builds a classifier for the given triggers.
func NewClassifier(assistantName, mediaTrigger, embedBase string, resolver Lookup) *Classifier {
	return &Classifier{
		AssistantName: assistantName,
		MediaTrigger:  mediaTrigger,
		EmbedBase:     embedBase,
		Resolver:      resolver,
		LookupTimeout: 10 * time.Second,
	}
}

// Classify determines the message kind and the payload to relay. For
// movie messages the payload is the embeddable player URL (empty when
// the title cannot be resolved); for everything else the relay carries
// the original text and the payload is opaque to the hub.
func (cl *Classifier) Classify(msg string) RelayRequest {
	switch {
	case strings.HasPrefix(msg, cl.MediaTrigger):
		return RelayRequest{Kind: domain.KindMovie, Payload: cl.resolveMedia(msg), Original: msg}
	case strings.HasPrefix(msg, "@"+cl.AssistantName):
		return RelayRequest{Kind: domain.KindAI, Payload: msg, Original: msg}
	default:
		return RelayRequest{Kind: domain.KindText, Payload: msg, Original: msg}
	}
}

// Query extracts the assistant query from a trigger message. The
// second value is false when the message does not address the
// assistant at all.
func (cl *Classifier) Query(msg string) (string, bool) {
	trigger := "@" + cl.AssistantName
	if !strings.HasPrefix(msg, trigger) {
		return "", false
	}
	parts := strings.SplitN(msg, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "你好", true
	}
	return parts[1], true
}

func (cl *Classifier) resolveMedia(msg string) string {
	parts := strings.SplitN(msg, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	arg := strings.TrimSpace(parts[1])
	if arg == "" {
		return ""
	}
	if isURL(arg) {
		return cl.EmbedBase + arg
	}

	if cl.Resolver == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), cl.LookupTimeout)
	defer cancel()
	streamURL, err := cl.Resolver.Lookup(ctx, arg)
	if err != nil {
		log.Printf("Media lookup for %q failed: %v", arg, err)
		return ""
	}
	if streamURL == "" {
		return ""
	}
	return cl.EmbedBase + streamURL
}

func isURL(text string) bool {
	return strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")
}
