package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thititongumpun/uoobpremium/internal/billing/announce"
	billingdomain "github.com/thititongumpun/uoobpremium/internal/billing/domain"
	"github.com/thititongumpun/uoobpremium/internal/discord"
	obscontext "github.com/thititongumpun/uoobpremium/internal/observability/context"
)

const (
	headerSignature = "X-Signature-Ed25519"
	headerTimestamp = "X-Signature-Timestamp"

	maxInteractionBody = 1 << 20
)

// HandleInteraction authenticates and answers one Discord interaction
// callback. No handler runs before the signature over timestamp||body
// has been verified against the configured public key.
func (s *Server) HandleInteraction(c *gin.Context) {
	signature := strings.TrimSpace(c.GetHeader(headerSignature))
	timestamp := strings.TrimSpace(c.GetHeader(headerTimestamp))
	publicKey := strings.TrimSpace(s.cfg.Discord.PublicKey)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInteractionBody))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if signature == "" || timestamp == "" || publicKey == "" {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	ok, err := discord.VerifyInteraction(publicKey, signature, timestamp, body)
	if err != nil || !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var interaction discord.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	switch interaction.Type {
	case discord.InteractionTypePing:
		c.JSON(http.StatusOK, discord.Pong())

	case discord.InteractionTypeApplicationCommand:
		ctx := obscontext.WithCallerID(c.Request.Context(), interaction.Member.User.ID)
		c.Request = c.Request.WithContext(ctx)
		s.handleCommand(c, interaction)

	default:
		AbortWithError(c, ErrUnknownCommand)
	}
}

func (s *Server) handleCommand(c *gin.Context, interaction discord.Interaction) {
	switch interaction.Data.Name {
	case "status":
		s.handleStatus(c, interaction.Member.User)
	case "checkbill":
		s.handleCheckBill(c)
	default:
		AbortWithError(c, ErrUnknownCommand)
	}
}

func (s *Server) handleStatus(c *gin.Context, user discord.User) {
	avatarURL := "https://cdn.discordapp.com/avatars/" + user.ID + "/" + user.Avatar + ".png"
	c.JSON(http.StatusOK, discord.Message(discord.ResponseData{
		Content: "สวัสดีครับคุณ <@" + user.ID + ">! (ID ของคุณคือ: " + user.ID + ")",
		Embeds: []discord.Embed{{
			Title: "ข้อมูลผู้ใช้งาน",
			Color: discord.ColorInfo,
			Fields: []discord.EmbedField{
				{Name: "ผู้เรียกคำสั่ง", Value: user.Username, Inline: true},
				{Name: "User ID", Value: user.ID, Inline: true},
			},
			Thumbnail: &discord.EmbedThumbnail{URL: avatarURL},
		}},
	}))
}

func (s *Server) handleCheckBill(c *gin.Context) {
	now := s.clk.Now().UTC()
	period := billingdomain.PeriodOf(now)

	summary, err := s.billingSvc.Summarize(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, billingdomain.ErrBillNotFound) {
			c.JSON(http.StatusOK, discord.Message(discord.ResponseData{
				Embeds: []discord.Embed{announce.NotFound(period)},
			}))
			return
		}
		// A store failure still has to answer the interaction; Discord
		// shows the member a visible error line instead of a timeout.
		s.log.Error("checkbill summarize failed",
			zap.String("period", period.String()),
			zap.String("request_id", obscontext.RequestIDFromGin(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, discord.Message(discord.ResponseData{
			Content: "⚠️ ไม่สามารถดึงข้อมูลบิลได้ในขณะนี้ ลองใหม่อีกครั้งนะครับ",
		}))
		return
	}

	c.JSON(http.StatusOK, discord.Message(discord.ResponseData{
		Embeds: []discord.Embed{announce.Summary(*summary, now)},
	}))
}
