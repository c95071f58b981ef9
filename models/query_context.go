package models

// QueryContext carries everything a transport needs to attempt one logical
// query. It is built once per query and never mutated afterwards.
type QueryContext struct {
	// OriginalMessage is the raw user text before sanitization.
	OriginalMessage string

	// Label is the sanitized, DNS-label-safe form of the message.
	Label string

	// QueryName is the fully qualified name actually queried,
	// label + "." + zone.
	QueryName string

	// TargetServer is the DNS server the query is sent to. Empty means
	// the platform's default resolver path.
	TargetServer string
}

// NewQueryContext validates and sanitizes a raw message against an optional
// custom server and composes the query name. Any error here is fatal for
// the query; nothing has touched the network yet.
func NewQueryContext(message, server string) (*QueryContext, error) {
	if server != "" {
		if err := ValidateServer(server); err != nil {
			return nil, err
		}
	}

	label, err := SanitizeMessage(message)
	if err != nil {
		return nil, err
	}

	name, err := ComposeQueryName(label, server)
	if err != nil {
		return nil, err
	}

	return &QueryContext{
		OriginalMessage: message,
		Label:           label,
		QueryName:       name,
		TargetServer:    server,
	}, nil
}
