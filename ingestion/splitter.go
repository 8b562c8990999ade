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

package ingestion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dealrecall/dealrecall/core"
)

// conversationHeaderRe matches section headers like "Conversation 7",
// "Conversation 7:" or "## Conversation 7" on their own line.
var conversationHeaderRe = regexp.MustCompile(`(?mi)^(?:#{1,3}\s*)?Conversation\s+(\d+)\s*:?\s*$`)

// dealContextRe captures the Deal Context section up to the Outcome label
// or the end of the block.
var dealContextRe = regexp.MustCompile(`(?si)Deal\s+Context\s*:\s*(.*?)(?:\n\s*Outcome\s*:|\z)`)

// outcomeRe captures everything after the Outcome label.
var outcomeRe = regexp.MustCompile(`(?si)Outcome\s*:\s*(.*)\z`)

// SplitCorpus parses a corpus document into one record per conversation
// block. Records come back in document order with Conversation, DealContext,
// Outcome and RawText populated; IDs and vectors are assigned later by the
// pipeline. Text before the first header is treated as a preamble and
// dropped.
func SplitCorpus(text string) ([]*core.Record, error) {
	headers := conversationHeaderRe.FindAllStringSubmatchIndex(text, -1)
	if len(headers) == 0 {
		return nil, ErrNoConversations
	}

	records := make([]*core.Record, 0, len(headers))
	for i, header := range headers {
		conversation, err := strconv.Atoi(text[header[2]:header[3]])
		if err != nil {
			return nil, fmt.Errorf("%w: header %q", core.ErrInvalidConversation, text[header[0]:header[1]])
		}

		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		block := strings.TrimSpace(text[header[1]:end])
		if block == "" {
			return nil, fmt.Errorf("%w: conversation %d has no content", core.ErrMalformedRecord, conversation)
		}

		dealContext, outcome := extractSections(block)
		records = append(records, &core.Record{
			Conversation: conversation,
			DealContext:  dealContext,
			Outcome:      outcome,
			RawText:      block,
		})
	}

	return records, nil
}

// extractSections pulls the Deal Context and Outcome sections out of a
// conversation block. Missing sections come back empty; corpus validation
// rejects them with a precise error afterwards.
func extractSections(block string) (dealContext, outcome string) {
	if m := dealContextRe.FindStringSubmatch(block); m != nil {
		dealContext = strings.TrimSpace(m[1])
	}
	if m := outcomeRe.FindStringSubmatch(block); m != nil {
		outcome = strings.TrimSpace(m[1])
	}
	return dealContext, outcome
}
