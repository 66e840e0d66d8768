package catalog

import (
	"fmt"
	"strings"
)

// Store owns the post catalog and the two append-only sequences shown in the preview.
//
// The catalog is read-only after construction. Comments and messages are only ever
// appended at the tail. A Store belongs to a single session and is not safe for
// concurrent use.
type Store struct {
	posts     []Post
	postIndex map[string]int

	comments []Comment
	messages []Message

	ids IDGenerator
}

// Option configures a Store at construction time.
type Option func(*storeOptions)

type storeOptions struct {
	ids       IDGenerator
	comments  []Comment
	greetings []string
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *storeOptions) {
		o.ids = g
	}
}

// WithSeedComments replaces the default seeded comments. Ids are reassigned.
func WithSeedComments(comments []Comment) Option {
	return func(o *storeOptions) {
		o.comments = comments
	}
}

// WithGreetings replaces the default bot greetings that open the conversation.
func WithGreetings(lines []string) Option {
	return func(o *storeOptions) {
		o.greetings = lines
	}
}

// NewStore builds a store over the given catalog.
// Returns an error if any post is invalid or two posts share an id.
func NewStore(posts []Post, opts ...Option) (*Store, error) {
	o := storeOptions{
		ids:       UUIDGenerator{},
		comments:  DefaultComments(),
		greetings: DefaultGreetings(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		posts:     make([]Post, 0, len(posts)),
		postIndex: make(map[string]int, len(posts)),
		ids:       o.ids,
	}

	for _, p := range posts {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		if _, exists := s.postIndex[p.ID]; exists {
			return nil, fmt.Errorf("invalid catalog: %w: %s", ErrDuplicatePost, p.ID)
		}
		s.postIndex[p.ID] = len(s.posts)
		s.posts = append(s.posts, p)
	}

	for _, c := range o.comments {
		c.ID = s.ids.NewID()
		s.comments = append(s.comments, c)
	}

	for _, line := range o.greetings {
		s.messages = append(s.messages, Message{
			ID:        s.ids.NewID(),
			Text:      line,
			Sender:    SenderBot,
			Timestamp: NowLabel,
		})
	}

	return s, nil
}

// NewDefaultStore builds a store over DefaultPosts.
func NewDefaultStore(opts ...Option) *Store {
	s, err := NewStore(DefaultPosts(), opts...)
	if err != nil {
		// The built-in catalog is always valid
		panic(err)
	}
	return s
}

// Posts returns the catalog in its fixed order.
func (s *Store) Posts() []Post {
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Post looks up a catalog entry by id.
func (s *Store) Post(id string) (Post, error) {
	i, ok := s.postIndex[id]
	if !ok {
		return Post{}, fmt.Errorf("%w: %q", ErrPostNotFound, id)
	}
	return s.posts[i], nil
}

// HasPost reports whether id is part of the catalog.
func (s *Store) HasPost(id string) bool {
	_, ok := s.postIndex[id]
	return ok
}

// Comments returns the comment thread in display order.
func (s *Store) Comments() []Comment {
	out := make([]Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// Messages returns the conversation in display order.
func (s *Store) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// AppendComment adds a comment authored by "you" to the end of the thread.
// The stored text is trimmed of surrounding whitespace.
// Returns ErrBlankText without touching the thread when text is blank.
func (s *Store) AppendComment(text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, ErrBlankText
	}

	c := Comment{
		ID:        s.ids.NewID(),
		Username:  CommentAuthor,
		Text:      text,
		AvatarRef: PlaceholderAvatar,
		Timestamp: NowLabel,
	}
	s.comments = append(s.comments, c)
	return c, nil
}

// AppendMessage adds a user-authored message to the end of the conversation.
// Returns ErrBlankText without touching the conversation when text is blank.
func (s *Store) AppendMessage(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrBlankText
	}

	m := Message{
		ID:        s.ids.NewID(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: NowLabel,
	}
	s.messages = append(s.messages, m)
	return m, nil
}
