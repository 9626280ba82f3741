package main

import (
	"context"
	"log"
	"time"

	"payment-support-be/internal/config"
	"payment-support-be/internal/entity"
	"payment-support-be/internal/repository/implementation"
	"payment-support-be/pkg/database"
	"payment-support-be/pkg/embedding"
	"payment-support-be/pkg/utils"

	"github.com/google/uuid"
)

type seedEntry struct {
	Title    string
	Category string
	Content  string
}

var seedEntries = []seedEntry{
	{
		Title:    "Daily transfer limits",
		Category: "limits",
		Content: "Standard accounts can transfer up to $5,000 per day. Premium accounts " +
			"have a daily limit of $25,000. Limits reset at midnight local time. You can " +
			"review your remaining daily allowance under Settings > Limits. Temporary " +
			"limit increases can be requested from support and take effect within one " +
			"business day.",
	},
	{
		Title:    "Monthly spending limits",
		Category: "limits",
		Content: "Every card has a monthly spending limit, configurable between $100 and " +
			"$50,000. The default for new cards is $10,000 per calendar month. Changing " +
			"the limit takes effect immediately and does not affect pending " +
			"authorizations.",
	},
	{
		Title:    "Blocking and unblocking your card",
		Category: "cards",
		Content: "You can block your card instantly from the app under Cards > Manage > " +
			"Block. A blocked card declines all new authorizations but recurring " +
			"payments already authorized will still settle. Unblocking is instant and " +
			"requires your PIN. If your card was blocked for security reasons by us, " +
			"contact support to lift the block.",
	},
	{
		Title:    "Refunds for failed payments",
		Category: "payments",
		Content: "If a payment fails after the amount was reserved, the reservation is " +
			"released automatically within 3 to 5 business days. Refunds for disputed " +
			"transactions are credited once the merchant confirms, typically within 10 " +
			"business days. You will see the refund as a separate entry in your " +
			"transaction history.",
	},
	{
		Title:    "Changing your PIN",
		Category: "security",
		Content: "Your PIN can be changed in the app under Cards > Security > Change PIN, " +
			"or at any supported ATM. PIN changes are immediate. After three incorrect " +
			"PIN attempts the card is locked for 24 hours; entering the correct PIN at " +
			"an ATM lifts the lock.",
	},
	{
		Title:    "Account verification and KYC documents",
		Category: "verification",
		Content: "To lift the initial account restrictions we need a government-issued " +
			"photo ID and a proof of address no older than three months. Upload both " +
			"under Profile > Verification. Review usually completes within 24 hours. " +
			"Until verified, incoming transfers are capped at $1,000 total.",
	},
	{
		Title:    "Transaction history and statements",
		Category: "account",
		Content: "Monthly statements are generated on the first day of the following " +
			"month and can be downloaded as PDF under Account > Statements. The in-app " +
			"transaction history covers the last 24 months and can be filtered by " +
			"merchant, category and amount.",
	},
	{
		Title:    "Reporting an unauthorized charge",
		Category: "security",
		Content: "If you see a charge you do not recognize, block your card first, then " +
			"open a dispute from the transaction detail view. Disputes must be filed " +
			"within 60 days of the statement date. We credit provisional refunds for " +
			"confirmed fraud within 5 business days.",
	},
}

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}

	entryRepo := implementation.NewSupportEntryRepository(db)
	embeddingRepo := implementation.NewSupportEmbeddingRepository(db)

	ctx := context.Background()

	log.Println("Seeding Knowledge Base...")

	for _, seed := range seedEntries {
		entry := entity.SupportEntry{
			Id:        uuid.New(),
			Title:     seed.Title,
			Content:   seed.Content,
			Category:  seed.Category,
			CreatedAt: time.Now(),
		}

		if err := entryRepo.Create(ctx, &entry); err != nil {
			log.Printf("Error creating entry '%s': %v", seed.Title, err)
			continue
		}

		chunks := utils.SplitText(seed.Content, 1500, 200)
		embeddings := make([]*entity.SupportEmbedding, 0, len(chunks))
		for i, chunk := range chunks {
			res, err := embeddingProvider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
			if err != nil {
				log.Printf("Error embedding chunk %d of '%s': %v", i, seed.Title, err)
				continue
			}
			embeddings = append(embeddings, &entity.SupportEmbedding{
				Id:             uuid.New(),
				Chunk:          chunk,
				EmbeddingValue: res.Embedding.Values,
				SupportEntryId: entry.Id,
				ChunkIndex:     i,
				CreatedAt:      time.Now(),
			})
		}

		if len(embeddings) > 0 {
			if err := embeddingRepo.CreateBulk(ctx, embeddings); err != nil {
				log.Printf("Error storing embeddings for '%s': %v", seed.Title, err)
				continue
			}
		}

		log.Printf("Seeded: %s (%d chunks)", seed.Title, len(embeddings))
	}

	log.Println("✅ Knowledge base seeding completed")
}
