package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"zerobot/repository"
	"zerobot/service"
	"zerobot/serverlog"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
)

var prefixes = []string{"!zero ", "!z "}

// commandAliases maps every accepted spelling to its canonical command.
var commandAliases = buildAliases(map[string][]string{
	"balance":     {"balance", "bl", "money", "cash", "sodu", "tien"},
	"daily":       {"daily", "dl", "dail", "dai", "diemdanh"},
	"coinflip":    {"coinflip", "cf"},
	"blackjack":   {"blackjack", "bj", "xidach"},
	"love":        {"love", "couple", "ghepdoi", "otp", "ship", "daythuyen"},
	"foxcoin":     {"foxcoin", "fxc"},
	"leaderboard": {"leaderboard", "ldb", "bxh"},
	"spin":        {"spin", "s", "sp"},
	"shop":        {"shop", "store", "cuahang"},
	"work":        {"work", "lamviec", "lv"},
	"rob":         {"rob", "cuop", "trom"},
	"give":        {"give", "gift", "tang"},
	"inventory":   {"inventory", "inv", "tui"},
	"taixiu":      {"taixiu"},
	"taisan":      {"taisan"},
	"pets":        {"pets"},
	"dish":        {"dish"},
	"help":        {"help"},
	"info":        {"info"},
})

func buildAliases(groups map[string][]string) map[string]string {
	out := make(map[string]string)
	for canonical, aliases := range groups {
		for _, a := range aliases {
			out[a] = canonical
		}
	}
	return out
}

type Handler struct {
	svc            *service.Service
	logs           *serverlog.Registry
	serverListFile string
}

func NewHandler(svc *service.Service, logs *serverlog.Registry, serverListFile string) Handler {
	return Handler{
		svc:            svc,
		logs:           logs,
		serverListFile: serverListFile,
	}
}

// Register attaches every gateway handler to the session.
func (h Handler) Register(s *discordgo.Session) {
	s.AddHandler(h.onMessageCreate)
	s.AddHandler(h.onMemberJoin)
	s.AddHandler(h.onMemberRemove)
	s.AddHandler(h.onMessageDelete)
	s.AddHandler(h.onMessageUpdate)
	s.AddHandler(h.onBanAdd)
	s.AddHandler(h.onBanRemove)
	s.AddHandler(h.onMemberUpdate)
}

func (h Handler) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	content := strings.TrimSpace(m.Content)
	lower := strings.ToLower(content)

	// an active blackjack round consumes bare hit/stand replies
	if (lower == "hit" || lower == "stand") && h.svc.HasBlackjackRound(m.Author.ID) {
		h.blackjackInput(s, m, lower)
		return
	}

	var body string
	matched := false
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			body = content[len(p):]
			matched = true
			break
		}
	}
	if !matched {
		return
	}
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return
	}
	cmd, ok := commandAliases[strings.ToLower(fields[0])]
	if !ok {
		return
	}
	args := fields[1:]

	h.logs.Log(m.GuildID, "[COMMAND] %s dùng lệnh: %s", m.Author.Username, m.Content)

	ctx := context.Background()
	switch cmd {
	case "balance":
		h.balance(ctx, s, m)
	case "daily":
		h.daily(ctx, s, m)
	case "coinflip":
		h.coinflip(ctx, s, m, args)
	case "blackjack":
		h.blackjackStart(ctx, s, m, args)
	case "love":
		h.love(s, m)
	case "foxcoin":
		h.foxcoin(ctx, s, m, args)
	case "leaderboard":
		h.leaderboard(ctx, s, m)
	case "taisan":
		h.assets(ctx, s, m)
	case "spin":
		h.spin(ctx, s, m, args)
	case "taixiu":
		h.taixiu(ctx, s, m, args)
	case "pets":
		h.pets(ctx, s, m, args)
	case "rob":
		h.rob(ctx, s, m)
	case "give":
		h.give(ctx, s, m, args)
	case "inventory":
		h.inventory(ctx, s, m)
	case "work":
		h.work(ctx, s, m)
	case "shop":
		h.shop(ctx, s, m, args)
	case "dish":
		h.reply(s, m.ChannelID, h.svc.Dish())
	case "help":
		h.help(s, m)
	case "info":
		h.info(s, m)
	}
}

func (h Handler) balance(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	account, err := h.svc.Balance(ctx, m.Author.ID)
	if err != nil {
		h.replyFailure(s, m.ChannelID, err)
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"💰 %s Số dư hiện tại: **%s**",
		m.Author.Mention(), formatMoney(account.Balance),
	))
}

func (h Handler) daily(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	res, err := h.svc.Daily(ctx, m.Author.ID)
	if err != nil {
		var cd *service.CooldownError
		if errors.As(err, &cd) {
			hours := int(cd.Remaining.Hours())
			mins := int(cd.Remaining.Minutes()) % 60
			h.reply(s, m.ChannelID, fmt.Sprintf(
				"⏳ Bạn đã nhận daily rồi. Thử lại sau %dh%dp.", hours, mins,
			))
			return
		}
		h.replyFailure(s, m.ChannelID, err)
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"🎁 %s nhận %s xu mỗi ngày! Số dư mới: **%s**",
		m.Author.Mention(), res.Amount.StringFixed(0), formatMoney(res.NewBalance),
	))
}

func (h Handler) work(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	res, err := h.svc.Work(ctx, m.Author.ID)
	if err != nil {
		var cd *service.CooldownError
		if errors.As(err, &cd) {
			mins := int(cd.Remaining.Minutes())
			secs := int(cd.Remaining.Seconds()) % 60
			h.reply(s, m.ChannelID, fmt.Sprintf(
				"⏳ Bạn cần nghỉ ngơi! Thử lại sau %d phút %d giây", mins, secs,
			))
			return
		}
		h.replyFailure(s, m.ChannelID, err)
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"💼 %s đã làm công việc **%s** và kiếm được **%s** xu!\nSố dư hiện tại: **%s** xu",
		m.Author.Mention(), res.Job, res.Earnings.StringFixed(0), formatMoney(res.NewBalance),
	))
}

func (h Handler) coinflip(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) != 2 {
		h.reply(s, m.ChannelID, "Cú pháp: `!zero coinflip heads/tails <số tiền>`")
		return
	}
	res, err := h.svc.CoinFlip(ctx, m.Author.ID, strings.ToLower(args[0]), strings.ToLower(args[1]))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidChoice):
			h.reply(s, m.ChannelID, "Cú pháp: `!zero coinflip heads/tails <số tiền>`")
		case errors.Is(err, service.ErrInvalidStake):
			h.reply(s, m.ChannelID, "Số tiền cược không hợp lệ hoặc vượt quá số dư!")
		default:
			h.replyFailure(s, m.ChannelID, err)
		}
		return
	}
	var msg string
	if res.Won {
		msg = fmt.Sprintf("🎉 %s thắng! Kết quả: **%s**. Nhận %s xu.",
			m.Author.Mention(), res.Result, formatMoney(res.Stake))
	} else {
		msg = fmt.Sprintf("😢 %s thua! Kết quả: **%s**. Mất %s xu.",
			m.Author.Mention(), res.Result, formatMoney(res.Stake))
	}
	h.reply(s, m.ChannelID, msg+fmt.Sprintf(" Số dư: **%s**", formatMoney(res.NewBalance)))
}

func (h Handler) taixiu(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) != 2 {
		h.reply(s, m.ChannelID, "Cú pháp: `!z taixiu tai/xiu <số tiền>`")
		return
	}
	res, err := h.svc.TaiXiu(ctx, m.Author.ID, strings.ToLower(args[0]), strings.ToLower(args[1]))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidChoice):
			h.reply(s, m.ChannelID, "Cú pháp: `!z taixiu tai/xiu <số tiền>`")
		case errors.Is(err, service.ErrInvalidStake):
			h.reply(s, m.ChannelID, "Số tiền cược không hợp lệ hoặc vượt quá số dư!")
		default:
			h.replyFailure(s, m.ChannelID, err)
		}
		return
	}
	dice := fmt.Sprintf("**%d + %d + %d = %d**", res.Dice[0], res.Dice[1], res.Dice[2], res.Total)
	var msg string
	switch {
	case res.Outcome == service.TaiXiuHouse:
		msg = fmt.Sprintf("Tổng điểm: %s.\nKết quả: **NHÀ CÁI ĂN**.\nKhông bị mất xu.", dice)
	case res.Won:
		msg = fmt.Sprintf("🎉 Chúc mừng %s thắng!\nTổng điểm: %s.\nKết quả: **%s**.\nNhận **%s** xu.",
			m.Author.Mention(), dice, taiXiuLabel(res.Outcome), formatMoney(res.Stake))
	default:
		msg = fmt.Sprintf("😢 Rất tiếc! %s thua!\nTổng điểm: %s.\nKết quả: **%s**.\nMất **%s** xu.",
			m.Author.Mention(), dice, taiXiuLabel(res.Outcome), formatMoney(res.Stake))
	}
	h.reply(s, m.ChannelID, msg+fmt.Sprintf(" Số dư: **%s**", formatMoney(res.NewBalance)))
}

func taiXiuLabel(outcome string) string {
	if outcome == service.TaiXiuTai {
		return "TÀI"
	}
	return "XỈU"
}

func (h Handler) spin(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		h.reply(s, m.ChannelID, "Hãy nhập đúng cú pháp! `!z spin <số tiền cược>`")
		return
	}
	res, err := h.svc.Spin(ctx, m.Author.ID, strings.ToLower(args[0]))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStake) {
			h.reply(s, m.ChannelID, "Số tiền cược không hợp lệ hoặc số dư không đủ!")
			return
		}
		h.replyFailure(s, m.ChannelID, err)
		return
	}
	var msg string
	if res.Won {
		msg = fmt.Sprintf("🎉 %s thắng! Nhận **%s** xu.\n", m.Author.Mention(), formatMoney(res.Stake))
	} else {
		msg = fmt.Sprintf("😢 %s thua! Mất **%s** xu.\n", m.Author.Mention(), formatMoney(res.Stake))
	}
	h.reply(s, m.ChannelID,
		"Đang quay số... Vui lòng đợi!\nKết quả: **"+strings.Join(res.Symbols[:], " | ")+"**\n"+
			msg+"Số dư: **"+formatMoney(res.NewBalance)+"**")
}

func (h Handler) blackjackStart(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		h.reply(s, m.ChannelID, "Cú pháp: `!zero blackjack <số tiền>`")
		return
	}
	channelID := m.ChannelID
	view, err := h.svc.StartBlackjack(ctx, m.Author.ID, strings.ToLower(args[0]), func() {
		h.reply(s, channelID, "⏰ Hết thời gian! Ván bài bị hủy.")
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoundInProgress):
			h.reply(s, m.ChannelID, "Bạn đang có ván blackjack chưa kết thúc!")
		case errors.Is(err, service.ErrInvalidStake):
			h.reply(s, m.ChannelID, "Số tiền bạn nhập không hợp lệ!")
		default:
			h.replyFailure(s, m.ChannelID, err)
		}
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"Bài của bạn: %s (Tổng: %d)\nBài dealer: %s và [ẩn]\nGõ `hit` để rút, `stand` để dừng.",
		strings.Join(view.Player, ", "), view.PlayerTotal, view.Dealer[0],
	))
}

func (h Handler) blackjackInput(s *discordgo.Session, m *discordgo.MessageCreate, move string) {
	ctx := context.Background()
	if move == "hit" {
		view, err := h.svc.BlackjackHit(ctx, m.Author.ID)
		if err != nil {
			if !errors.Is(err, service.ErrNoRound) {
				h.replyFailure(s, m.ChannelID, err)
			}
			return
		}
		if view.Outcome == service.OutcomeBust {
			h.reply(s, m.ChannelID, fmt.Sprintf(
				"💥 Quá 21! Bạn thua **%s** xu. Số dư: **%s**",
				formatMoney(view.Stake), formatMoney(view.NewBalance),
			))
			return
		}
		h.reply(s, m.ChannelID, fmt.Sprintf(
			"Bạn rút: %s. Bài: %s (Tổng: %d)",
			view.Drawn, strings.Join(view.Player, ", "), view.PlayerTotal,
		))
		return
	}

	view, err := h.svc.BlackjackStand(ctx, m.Author.ID)
	if err != nil {
		if !errors.Is(err, service.ErrNoRound) {
			h.replyFailure(s, m.ChannelID, err)
		}
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"Bài dealer: %s (Tổng: %d)",
		strings.Join(view.Dealer, ", "), view.DealerTotal,
	))
	var result string
	switch view.Outcome {
	case service.OutcomeWin:
		result = fmt.Sprintf("🎉 Bạn thắng **%s** xu!", formatMoney(view.Stake))
	case service.OutcomePush:
		result = "🤝 Hòa! Không mất tiền."
	default:
		result = fmt.Sprintf("😢 Bạn thua **%s** xu.", formatMoney(view.Stake))
	}
	h.reply(s, m.ChannelID, fmt.Sprintf("%s Số dư: **%s**", result, formatMoney(view.NewBalance)))
}

const foxcoinUsage = "Hãy chọn 1 trong 3 lựa chọn dưới đây:\n" +
	"Kiểm tra giá và số lượng foxcoin đang sở hữu. `!z foxcoin check`\n" +
	"Mua foxcoin. `!z foxcoin buy <số lượng>`\n" +
	"Bán foxcoin. `!z foxcoin sell <số lượng>`"

func (h Handler) foxcoin(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		h.reply(s, m.ChannelID, foxcoinUsage)
		return
	}
	action := strings.ToLower(args[0])
	switch action {
	case "check":
		if len(args) != 1 {
			h.reply(s, m.ChannelID, foxcoinUsage)
			return
		}
		info, err := h.svc.FoxcoinCheck(ctx, m.Author.ID)
		if err != nil {
			h.replyFailure(s, m.ChannelID, err)
			return
		}
		h.reply(s, m.ChannelID, fmt.Sprintf(
			"Bạn đang có **%s** foxcoin.\n"+
				"Nguồn cung foxcoin trên thị trường hiện tại là **%s/%s**\n"+
				"Giá 1 foxcoin hiện tại là **%s**\n"+
				"Tổng giá trị số foxcoin bạn đang sở hữu là **%s**",
			formatMoney(info.Holdings), formatMoney(info.Supply), formatMoney(info.MaxSupply),
			info.Price.String(), formatMoney(info.Value),
		))
	case "buy", "sell":
		if len(args) != 2 {
			h.reply(s, m.ChannelID, foxcoinUsage)
			return
		}
		var (
			trade service.FoxcoinTrade
			err   error
			verb  string
		)
		if action == "buy" {
			trade, err = h.svc.FoxcoinBuy(ctx, m.Author.ID, strings.ToLower(args[1]))
			verb = "mua"
		} else {
			trade, err = h.svc.FoxcoinSell(ctx, m.Author.ID, strings.ToLower(args[1]))
			verb = "bán"
		}
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSupplyCap):
				h.reply(s, m.ChannelID, "Số lượng foxcoin có sẵn trên thị trường hiện không đủ!")
			case errors.Is(err, service.ErrInvalidAmount) && action == "buy":
				h.reply(s, m.ChannelID, "Số foxcoin không hợp lệ hoặc vượt quá số dư!")
			case errors.Is(err, service.ErrInvalidAmount):
				h.reply(s, m.ChannelID, "Số foxcoin không hợp lệ hoặc vượt quá số lượng bạn đang có!")
			default:
				h.replyFailure(s, m.ChannelID, err)
			}
			return
		}
		h.reply(s, m.ChannelID, fmt.Sprintf(
			"Bạn đã %s **%s** foxcoin với tổng giá trị giao dịch là **%s**.\n"+
				"Hiện tại bạn có **%s** foxcoin.\nSố dư: **%s**.",
			verb, trade.Amount.StringFixed(2), formatMoney(trade.Total),
			formatMoney(trade.Holdings), formatMoney(trade.NewBalance),
		))
	default:
		h.reply(s, m.ChannelID, foxcoinUsage)
	}
}

func (h Handler) assets(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	res, err := h.svc.Assets(ctx, m.Author.ID)
	if err != nil {
		h.replyFailure(s, m.ChannelID, err)
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"💰 %s Tài sản của bạn gồm có:\n- Số dư: **%s**\n"+
			"- Foxcoin: **%s** foxcoin, trị giá khoảng **%s** *(%s/foxcoin)*\n"+
			"Tổng tài sản của bạn là: **%s**",
		m.Author.Mention(), formatMoney(res.Balance), formatMoney(res.Foxcoin),
		formatMoney(res.FoxcoinValue), formatMoney(res.FoxcoinPrice), formatMoney(res.NetWorth),
	))
}

func (h Handler) leaderboard(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	entries, err := h.svc.Leaderboard(ctx)
	if err != nil {
		h.replyFailure(s, m.ChannelID, err)
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Bảng xếp hạng tài sản 🏆",
		Color: 0xF1C40F,
	}
	for rank, entry := range entries {
		name := entry.UserID
		if u, err := s.User(entry.UserID); err == nil {
			name = u.Username
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s", rank+1, name),
			Value: fmt.Sprintf("Tổng tài sản: %s", entry.NetWorth.StringFixed(2)),
		})
	}
	h.replyEmbed(s, m.ChannelID, embed)
}

func (h Handler) love(s *discordgo.Session, m *discordgo.MessageCreate) {
	if len(m.Mentions) != 2 {
		h.reply(s, m.ChannelID, "Vui lòng nhập đúng cú pháp `!z love <Người dùng 1> <Người dùng 2>`")
		return
	}
	res, err := h.svc.Love(m.Mentions[0].ID, m.Mentions[1].ID)
	if err != nil {
		h.replyFailure(s, m.ChannelID, err)
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf("Tỷ lệ hợp nhau của 2 bạn là %d%%", res.Percent))
	h.reply(s, m.ChannelID, loveVerdict(res.Percent))
}

func loveVerdict(percent int) string {
	switch {
	case percent == 100:
		return "💍 **CẦN ĐỂ GẤP!!!!!** 💍\n" +
			"Vì 2 bạn là định mệnh là có thật! 💘 Hai bạn là cặp đôi hoàn hảo từ tên đến trái tim! 💍💖 Chúc mừng vì đã tìm thấy nửa kia của mình!"
	case percent >= 90:
		return "Mình nghĩ 2 bạn nên về chung 1 nhà với nhau! 🏡💑"
	case percent >= 80:
		return "Một tình yêu đáng ngưỡng mộ! 💖"
	case percent >= 70:
		return "Rất hợp nhau đấy! Thử tìm hiểu thêm xem sao! 😊"
	case percent >= 50:
		return "Cũng tạm ổn, nhưng vẫn cần cố gắng! 🤝"
	case percent >= 30:
		return "Hmm... Có lẽ chỉ nên làm bạn. 😅"
	case percent >= 10:
		return "Khó đấy... chắc không cùng tần số. 😬"
	case percent >= 1:
		return "💔 Oan gia trái số luôn rồi!"
	default:
		return "Là do giá trị không hợp lệ hay... **không hợp nhau**? 🤖"
	}
}

func (h Handler) rob(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if len(m.Mentions) != 1 {
		h.reply(s, m.ChannelID, "Cú pháp: `!z rob @người_dùng`")
		return
	}
	target := m.Mentions[0]
	res, err := h.svc.Rob(ctx, m.Author.ID, target.ID)
	if err != nil {
		var cd *service.CooldownError
		switch {
		case errors.Is(err, service.ErrSelfTarget):
			h.reply(s, m.ChannelID, "Bạn không thể tự cướp chính mình!")
		case errors.As(err, &cd):
			h.reply(s, m.ChannelID, fmt.Sprintf(
				"⏳ Bạn cần chờ %d phút nữa trước khi cướp tiếp!", int(cd.Remaining.Minutes()),
			))
		case errors.Is(err, service.ErrVictimTooPoor):
			h.reply(s, m.ChannelID, "Nạn nhân không có đủ tiền để cướp!")
		default:
			h.replyFailure(s, m.ChannelID, err)
		}
		return
	}
	if res.Success {
		h.reply(s, m.ChannelID, fmt.Sprintf(
			"💰 %s đã cướp thành công %s xu từ %s!\nSố dư hiện tại: %s xu",
			m.Author.Mention(), formatMoney(res.Amount), target.Mention(), formatMoney(res.NewBalance),
		))
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"🚨 %s đã bị bắt khi cố cướp %s!\nBạn bị phạt %s xu\nSố dư hiện tại: %s xu",
		m.Author.Mention(), target.Mention(), formatMoney(res.Fine), formatMoney(res.NewBalance),
	))
}

func (h Handler) give(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(m.Mentions) != 1 || len(args) < 2 {
		h.reply(s, m.ChannelID, "Cú pháp: `!z give @người_dùng <số tiền>`")
		return
	}
	amount, err := strconv.ParseInt(args[len(args)-1], 10, 64)
	if err != nil {
		h.reply(s, m.ChannelID, "Cú pháp: `!z give @người_dùng <số tiền>`")
		return
	}
	target := m.Mentions[0]
	res, err := h.svc.Give(ctx, m.Author.ID, target.ID, decimal.NewFromInt(amount))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfTarget):
			h.reply(s, m.ChannelID, "Bạn không thể tự tặng tiền cho chính mình!")
		case errors.Is(err, service.ErrInvalidAmount):
			h.reply(s, m.ChannelID, "Số tiền phải lớn hơn 0!")
		case errors.Is(err, repository.ErrInsufficientFunds):
			h.reply(s, m.ChannelID, "Số dư không đủ để thực hiện giao dịch!")
		default:
			h.replyFailure(s, m.ChannelID, err)
		}
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"🎁 %s đã tặng %s xu cho %s!\nSố dư của bạn còn: %s xu",
		m.Author.Mention(), formatMoney(res.Amount), target.Mention(), formatMoney(res.SenderBalance),
	))
}

const petsUsage = "Hãy nhập đúng cú pháp!\n`!z pets buy/sell <tên pet>`\n" +
	"`!z pets feed <tên pet>`\n`!z pets give <tên pet><người dùng>`"

func (h Handler) pets(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		h.reply(s, m.ChannelID, petsUsage)
		return
	}
	action := strings.ToLower(args[0])
	pet := strings.ToLower(args[1])

	var (
		res service.PetResult
		err error
		msg string
	)
	switch action {
	case "give":
		if len(m.Mentions) == 0 {
			h.reply(s, m.ChannelID, "❌ Bạn cần tag người nhận!")
			return
		}
		recipient := m.Mentions[0]
		res, err = h.svc.PetsGive(ctx, m.Author.ID, recipient.ID, pet)
		if err == nil {
			h.reply(s, m.ChannelID, fmt.Sprintf(
				"🎁 %s đã tặng pet **%s** cho %s!", m.Author.Mention(), pet, recipient.Mention(),
			))
			return
		}
	case "buy":
		res, err = h.svc.PetsBuy(ctx, m.Author.ID, pet)
		if err == nil {
			msg = fmt.Sprintf("🎉 %s đã mua pet **%s** với giá **%s** xu!",
				m.Author.Mention(), pet, formatMoney(res.Amount))
		}
	case "sell":
		res, err = h.svc.PetsSell(ctx, m.Author.ID, pet)
		if err == nil {
			msg = fmt.Sprintf("💰 %s đã bán pet **%s** và nhận được **%s** xu!",
				m.Author.Mention(), pet, formatMoney(res.Amount))
		}
	case "feed":
		res, err = h.svc.PetsFeed(ctx, m.Author.ID, pet)
		if err == nil {
			msg = fmt.Sprintf("🍖 %s đã cho pet **%s** ăn và mất **%s** xu!",
				m.Author.Mention(), pet, formatMoney(res.Amount))
		}
	default:
		h.reply(s, m.ChannelID, petsUsage)
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPet):
			h.reply(s, m.ChannelID, petsUsage)
		case errors.Is(err, service.ErrSelfTarget):
			h.reply(s, m.ChannelID, "❌ Bạn không thể tặng pet cho chính mình!")
		case errors.Is(err, repository.ErrPetNotOwned):
			h.reply(s, m.ChannelID, "❌ Bạn không sở hữu pet này!")
		case errors.Is(err, repository.ErrInsufficientFunds) && action == "feed":
			h.reply(s, m.ChannelID, "❌ Số dư không đủ để cho ăn pet này!")
		case errors.Is(err, repository.ErrInsufficientFunds):
			h.reply(s, m.ChannelID, "❌ Số dư không đủ để mua pet này!")
		default:
			h.replyFailure(s, m.ChannelID, err)
		}
		return
	}
	h.reply(s, m.ChannelID, fmt.Sprintf(
		"%s Số dư hiện tại: **%s** xu.\nDanh sách pet của bạn: **%s**",
		msg, formatMoney(res.NewBalance), strings.Join(res.Pets, ", "),
	))
}

func (h Handler) inventory(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	target := m.Author
	if len(m.Mentions) == 1 {
		target = m.Mentions[0]
	}
	inv, err := h.svc.Inventory(ctx, target.ID)
	if err != nil {
		h.replyFailure(s, m.ChannelID, err)
		return
	}
	if len(inv) == 0 {
		who := "Bạn"
		if target.ID != m.Author.ID {
			who = target.Username
		}
		h.reply(s, m.ChannelID, who+" chưa có vật phẩm nào!")
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎒 KHO ĐỒ CỦA %s", strings.ToUpper(target.Username)),
		Color: 0x3498DB,
	}
	catalog := h.svc.ShopCatalog()
	for item, quantity := range inv {
		detail, ok := catalog[item]
		if !ok {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s", detail.Emoji, titleCase(item)),
			Value:  fmt.Sprintf("Số lượng: %d", quantity),
			Inline: true,
		})
	}
	h.replyEmbed(s, m.ChannelID, embed)
}

func (h Handler) shop(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		embed := &discordgo.MessageEmbed{
			Title: "🛒 CỬA HÀNG VẬT PHẨM 🛒",
			Color: 0xF1C40F,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "Sử dụng !z shop buy <tên vật phẩm> [số lượng] để mua",
			},
		}
		for name, detail := range h.svc.ShopCatalog() {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  fmt.Sprintf("%s %s - %s xu", detail.Emoji, titleCase(name), formatMoney(detail.Price)),
				Value: detail.Description,
			})
		}
		h.replyEmbed(s, m.ChannelID, embed)
		return
	}

	switch strings.ToLower(args[0]) {
	case "buy":
		if len(args) < 2 {
			h.reply(s, m.ChannelID, "Vui lòng chọn vật phẩm! Ví dụ: `!z shop buy diamond`")
			return
		}
		quantity := 1
		if len(args) >= 3 {
			q, err := strconv.Atoi(args[2])
			if err != nil {
				h.reply(s, m.ChannelID, "Số lượng không hợp lệ!")
				return
			}
			quantity = q
		}
		res, err := h.svc.ShopBuy(ctx, m.Author.ID, strings.ToLower(args[1]), quantity)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnknownItem):
				h.reply(s, m.ChannelID, "Vật phẩm không tồn tại trong cửa hàng!")
			case errors.Is(err, repository.ErrInsufficientFunds):
				h.reply(s, m.ChannelID, "Số dư không đủ!")
			case errors.Is(err, service.ErrInvalidAmount):
				h.reply(s, m.ChannelID, "Số lượng không hợp lệ!")
			default:
				h.replyFailure(s, m.ChannelID, err)
			}
			return
		}
		h.reply(s, m.ChannelID, fmt.Sprintf(
			"🎉 %s đã mua %d %s %s với giá %s xu!\nSố dư còn lại: %s xu",
			m.Author.Mention(), res.Quantity, res.Emoji, res.Item,
			formatMoney(res.Cost), formatMoney(res.NewBalance),
		))
	case "sell":
		if err := h.svc.ShopSell(ctx, m.Author.ID, ""); err != nil {
			h.reply(s, m.ChannelID, "Bán vật phẩm hiện chưa được hỗ trợ.")
		}
	}
}

func (h Handler) help(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed := &discordgo.MessageEmbed{
		Title:       "📘 Hướng dẫn sử dụng BOT - Zero Bot",
		Description: "Danh sách đầy đủ các lệnh",
		Color:       0x3498DB,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Prefix: " + strings.Join(prefixes, ", "),
		},
	}
	categories := []struct {
		name  string
		lines []string
	}{
		{"💰 Kinh tế", []string{
			"`!z daily` - Nhận quà hàng ngày",
			"`!z work` - Làm việc kiếm tiền (30p/lần)",
			"`!z give @user <amount>` - Tặng tiền",
			"`!z rob @user` - Cướp tiền (1h/lần)",
		}},
		{"🎮 Mini Games", []string{
			"`!z blackjack <amount>` - Chơi xì dách",
			"`!z coinflip <heads/tails> <amount>` - Tung đồng xu",
			"`!z spin <amount>` - Quay slot",
			"`!z taixiu <tai/xiu> <amount>` - Cá cược tài xỉu",
		}},
		{"🛒 Cửa hàng", []string{
			"`!z shop` - Xem cửa hàng",
			"`!z shop buy <item>` - Mua vật phẩm",
			"`!z inventory` - Xem kho đồ",
		}},
		{"📊 Khác", []string{
			"`!z foxcoin <check/buy/sell>` - Giao dịch foxcoin",
			"`!z leaderboard` - Bảng xếp hạng",
			"`!z love @user1 @user2` - Xem độ hợp nhau",
		}},
	}
	for _, c := range categories {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  c.name,
			Value: strings.Join(c.lines, "\n"),
		})
	}
	h.replyEmbed(s, m.ChannelID, embed)
}

func (h Handler) info(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.reply(s, m.ChannelID, "🤖 Giới thiệu về Bot\n\n"+
		"Chào bạn! Mình là **Zero Bot**, một bot Discord thân thiện được tạo ra "+
		"để giúp server của bạn trở nên vui vẻ và thú vị hơn!\n\n"+
		"📚 Dùng lệnh `!z help` để xem tất cả các lệnh mà mình hỗ trợ.\n"+
		"🛠 Luôn được cập nhật và cải tiến để mang đến trải nghiệm tốt nhất!")
}

// --- Activity log events ---

func (h Handler) onMemberJoin(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil {
		return
	}
	h.logs.Log(m.GuildID, "[JOIN] %s (ID: %s) đã tham gia server.", m.User.Username, m.User.ID)
}

func (h Handler) onMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.User == nil {
		return
	}
	h.logs.Log(m.GuildID, "[LEAVE] %s đã rời khỏi server.", m.User.Username)
}

func (h Handler) onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.GuildID == "" || m.BeforeDelete == nil || m.BeforeDelete.Author == nil || m.BeforeDelete.Author.Bot {
		return
	}
	h.logs.Log(m.GuildID, "[DELETE] %s in #%s: %s",
		m.BeforeDelete.Author.Username, m.ChannelID, m.BeforeDelete.Content)
}

func (h Handler) onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.GuildID == "" || m.BeforeUpdate == nil || m.Author == nil || m.Author.Bot {
		return
	}
	if m.BeforeUpdate.Content == m.Content {
		return
	}
	h.logs.Log(m.GuildID, "[EDIT] %s in #%s:\n\t- Trước: %s\n\t- Sau: %s",
		m.Author.Username, m.ChannelID, m.BeforeUpdate.Content, m.Content)
}

func (h Handler) onBanAdd(s *discordgo.Session, b *discordgo.GuildBanAdd) {
	if b.User == nil {
		return
	}
	h.logs.Log(b.GuildID, "[BAN] %s (%s) đã bị ban khỏi server.", b.User.Username, b.User.ID)
}

func (h Handler) onBanRemove(s *discordgo.Session, b *discordgo.GuildBanRemove) {
	if b.User == nil {
		return
	}
	h.logs.Log(b.GuildID, "[UNBAN] %s (%s) đã được unban.", b.User.Username, b.User.ID)
}

func (h Handler) onMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	if m.BeforeUpdate == nil || m.User == nil {
		return
	}
	added, removed := diffRoles(m.BeforeUpdate.Roles, m.Roles)
	if len(added) > 0 {
		h.logs.Log(m.GuildID, "[ROLE ADDED] %s được thêm role: %s",
			m.User.Username, strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		h.logs.Log(m.GuildID, "[ROLE REMOVED] %s bị gỡ role: %s",
			m.User.Username, strings.Join(removed, ", "))
	}
}

func diffRoles(before, after []string) (added, removed []string) {
	prev := make(map[string]bool, len(before))
	for _, r := range before {
		prev[r] = true
	}
	next := make(map[string]bool, len(after))
	for _, r := range after {
		next[r] = true
		if !prev[r] {
			added = append(added, r)
		}
	}
	for _, r := range before {
		if !next[r] {
			removed = append(removed, r)
		}
	}
	return added, removed
}

// RunGuildSnapshot rewrites the guild list file on a fixed interval.
func (h Handler) RunGuildSnapshot(ctx context.Context, s *discordgo.Session, interval time.Duration) {
	h.writeGuildSnapshot(s)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.writeGuildSnapshot(s)
		}
	}
}

func (h Handler) writeGuildSnapshot(s *discordgo.Session) {
	var b strings.Builder
	for _, g := range s.State.Guilds {
		fmt.Fprintf(&b, "Name: %s; ID: %s\n", g.Name, g.ID)
	}
	if err := os.WriteFile(h.serverListFile, []byte(b.String()), 0o644); err != nil {
		log.Printf("ghi danh sách server thất bại: %v", err)
	}
}

// --- Reply helpers ---

func (h Handler) reply(s *discordgo.Session, channelID, text string) {
	if _, err := s.ChannelMessageSend(channelID, text); err != nil {
		log.Printf("gửi tin nhắn thất bại: %v", err)
	}
}

func (h Handler) replyEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Printf("gửi embed thất bại: %v", err)
	}
}

func (h Handler) replyFailure(s *discordgo.Session, channelID string, err error) {
	log.Printf("lệnh thất bại: %v", err)
	h.reply(s, channelID, "❌ Có lỗi xảy ra, vui lòng thử lại sau.")
}

// titleCase capitalizes the first letter of a catalog name. Catalog
// keys are lowercase ASCII.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatMoney renders an amount with thousands separators and two
// decimal places, matching the bot's message style.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(intPart[i : i+3])
	}
	out := b.String() + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}
