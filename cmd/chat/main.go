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


package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dealrecall/dealrecall"
)

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	dbPath := "./dealrecall_db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	db, err := dealrecall.NewDatabase(dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	answerer, err := db.NewAnswerer()
	if err != nil {
		panic(err)
	}

	fmt.Println("dealrecall chat. Ask about a past sales conversation, or type 'exit'.")

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		result, err := answerer.Ask(ctx, question)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		if !result.Matched {
			fmt.Println("No matching conversation found.")
			continue
		}

		fmt.Printf("%s\n  (%s)\n", result.AnswerText, result.SourceLabel)
	}
}
