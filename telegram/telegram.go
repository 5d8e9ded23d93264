package telegram

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"ootdapi/models"
)

var usernames string = os.Getenv("TG_ADMINS") //separated by comma from env

func EscapeMessage(message string) string {
	r := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return r.Replace(message)
}

// TelegramService sends notifications to the admin chat and answers the
// /stats command. Nil-safe: a nil service is a disabled integration.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	db     *gorm.DB
}

func NewTelegramService(db *gorm.DB) (*TelegramService, error) {
	token := os.Getenv("TG_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TG_TOKEN is not set")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	chatID, err := strconv.ParseInt(os.Getenv("TG_ADMIN_CHAT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TG_ADMIN_CHAT_ID is not a chat id: %v", err)
	}
	return &TelegramService{bot: bot, chatID: chatID, db: db}, nil
}

// NotifyAdmins sends a markdown message to the admin chat.
func (s *TelegramService) NotifyAdmins(message string) {
	if s == nil {
		return
	}
	msg := tgbotapi.NewMessage(s.chatID, message)
	msg.ParseMode = "markdown"
	if _, err := s.bot.Send(msg); err != nil {
		log.Println("Error sending telegram message:", err)
	}
}

func isAdmin(username string) bool {
	if usernames == "" {
		return false
	}
	for _, admin := range strings.Split(usernames, ",") {
		if strings.TrimSpace(admin) == username {
			return true
		}
	}
	return false
}

func (s *TelegramService) statsMessage() string {
	var users, items, posts, generations int64
	s.db.Model(models.UserAccount{}).Count(&users)
	s.db.Model(models.WardrobeItem{}).Count(&items)
	s.db.Model(models.Post{}).Count(&posts)
	s.db.Model(models.StylistGeneration{}).Count(&generations)
	return fmt.Sprintf(
		"👥 Users: %d\n👕 Wardrobe items: %d\n📸 Feed posts: %d\n🤖 Stylist generations: %d",
		users, items, posts, generations,
	)
}

// RunStatsBot handles the admin /stats command. Blocks, run in a goroutine.
func (s *TelegramService) RunStatsBot() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := s.bot.GetUpdatesChan(u)
	for update := range updates {
		if update.Message == nil {
			continue
		}
		if !isAdmin(update.Message.From.UserName) {
			continue
		}
		if update.Message.Command() == "stats" {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, s.statsMessage())
			if _, err := s.bot.Send(msg); err != nil {
				log.Println(err.Error())
			}
		}
	}
}
