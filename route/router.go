// Copyright 2026 Dealrecall Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package route

import (
	"log/slog"
	"strings"
)

// Router narrows a query to a single conversation before retrieval by
// counting keyword hits per configured route. A query that matches no route
// is answered against the whole corpus, so routing can only focus a search,
// never block one.
type Router struct {
	routes []ConversationRoute
	logger *slog.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRouter creates a router over the given conversation routes.
func NewRouter(routes []ConversationRoute, opts ...RouterOption) (*Router, error) {
	for _, route := range routes {
		if err := route.validate(); err != nil {
			return nil, err
		}
	}

	r := &Router{
		routes: routes,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RouterFromFile creates a router from a JSON configuration file.
func RouterFromFile(path string, opts ...RouterOption) (*Router, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewRouter(config.Conversations, opts...)
}

// Route returns the conversation number to scope retrieval to. The route
// with the most keyword hits wins; ties go to the lowest conversation
// number so identical queries always route identically. The second return
// value is false when no keyword matched and the whole corpus should be
// searched.
func (r *Router) Route(query string) (int, bool) {
	queryLower := strings.ToLower(query)

	bestConversation := 0
	bestHits := 0
	for _, route := range r.routes {
		hits := 0
		for _, keyword := range route.Keywords {
			if strings.Contains(queryLower, strings.ToLower(keyword)) {
				hits++
			}
		}
		if hits > bestHits || (hits == bestHits && hits > 0 && route.Conversation < bestConversation) {
			bestConversation = route.Conversation
			bestHits = hits
		}
	}

	if bestHits == 0 {
		r.logger.Debug("no route matched, searching all conversations")
		return 0, false
	}

	r.logger.Debug("query routed",
		"conversation", bestConversation,
		"keywordHits", bestHits)
	return bestConversation, true
}

// Lookup returns the route for a conversation number, or false if the
// conversation is not configured.
func (r *Router) Lookup(conversation int) (ConversationRoute, bool) {
	for _, route := range r.routes {
		if route.Conversation == conversation {
			return route, true
		}
	}
	return ConversationRoute{}, false
}

// Routes returns the configured conversation routes.
func (r *Router) Routes() []ConversationRoute {
	return r.routes
}
