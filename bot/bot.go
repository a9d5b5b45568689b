// Copyright 2025 Poiesic Systems
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


// Package bot delivers search results over Telegram. It is a thin
// presenter: all retrieval logic lives in the search package.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/poiesic/refsearch/core"
	"github.com/poiesic/refsearch/corpus"
	"github.com/poiesic/refsearch/search"
)

const (
	msgGreeting = "This bot tries to match your diagnoses against the reference article corpus.\n" +
		"Just send a description of your conditions or symptoms as the next message."
	msgProcessing   = "Processing your request"
	msgNothingFound = "No relevant articles found"
	msgArticleUsage = "Usage: /article <number>\nExample: /article 57"
	msgNoArticle    = "Article not found"
	updateTimeout   = 30 // seconds, long-poll
)

// Bot runs a long-polling Telegram bot over a store and a searcher.
type Bot struct {
	api      *tgbotapi.BotAPI
	store    corpus.ArticleStore
	searcher *search.Searcher
	logger   *slog.Logger
}

// New creates a bot authenticated with the given token.
func New(token string, store corpus.ArticleStore, searcher *search.Searcher) (*Bot, error) {
	if store == nil {
		return nil, errors.New("article store required")
	}
	if searcher == nil {
		return nil, errors.New("searcher required")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{
		api:      api,
		store:    store,
		searcher: searcher,
		logger:   slog.Default().With("component", "bot"),
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", "username", b.api.Self.UserName)

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeout
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	switch {
	case message.IsCommand() && message.Command() == "start":
		b.reply(message.Chat.ID, msgGreeting)
	case message.IsCommand() && message.Command() == "article":
		b.handleArticle(ctx, message)
	default:
		b.handleSearch(ctx, message)
	}
}

// handleArticle serves "/article N": the raw text of one article.
func (b *Bot) handleArticle(ctx context.Context, message *tgbotapi.Message) {
	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		b.reply(message.Chat.ID, msgArticleUsage)
		return
	}

	id, err := core.ParseArticleID(arg)
	if err != nil {
		b.reply(message.Chat.ID, "Invalid input: "+html.EscapeString(arg))
		return
	}

	article, err := b.store.Article(ctx, id)
	if err != nil {
		if errors.Is(err, corpus.ErrArticleNotFound) {
			b.logger.Warn("no such article", "number", id)
			b.reply(message.Chat.ID, msgNoArticle)
			return
		}
		b.logger.Error("article fetch failed", "number", id, "err", err)
		b.reply(message.Chat.ID, "Internal error")
		return
	}

	b.replyChunked(message.Chat.ID, formatArticle(article))
}

// handleSearch runs the pipeline for free-form text and sends one message
// per matched article.
func (b *Bot) handleSearch(ctx context.Context, message *tgbotapi.Message) {
	condition := strings.TrimSpace(message.Text)
	if condition == "" {
		b.reply(message.Chat.ID, msgNothingFound)
		return
	}

	b.reply(message.Chat.ID, msgProcessing)

	results, err := b.searcher.SearchWithMonitor(ctx, condition, search.NewLogMonitor(b.logger))
	if err != nil {
		b.logger.Error("search failed", "err", err)
		b.reply(message.Chat.ID, "Internal error")
		return
	}

	if len(results) == 0 {
		b.reply(message.Chat.ID, msgNothingFound)
		return
	}
	for _, r := range results {
		b.replyChunked(message.Chat.ID, formatResult(r))
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send failed", "chat", chatID, "err", err)
	}
}

func (b *Bot) replyChunked(chatID int64, text string) {
	for _, chunk := range splitMessage(text) {
		b.reply(chatID, chunk)
	}
}
