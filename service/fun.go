package service

import (
	"math"
	"strconv"
)

// digitReduce folds an identifier: split off the last digit, add it to
// the rest, and repeat while the sum has more than one digit. Kept
// exactly as shipped, quirks included.
func digitReduce(n int64) int64 {
	j := n / 10
	k := n % 10
	if j+k > 9 {
		return digitReduce(j + k)
	}
	return j + k
}

type LoveResult struct {
	Percent int
}

// Love computes the compatibility percentage for two user identifiers:
// the square root of the product of their digit reductions plus a
// random 0-100 offset, modulo 100. Pure entertainment, no economy.
func (s *Service) Love(userID1, userID2 string) (LoveResult, error) {
	id1, err := strconv.ParseInt(userID1, 10, 64)
	if err != nil {
		return LoveResult{}, ErrInvalidChoice
	}
	id2, err := strconv.ParseInt(userID2, 10, 64)
	if err != nil {
		return LoveResult{}, ErrInvalidChoice
	}
	s1, s2 := digitReduce(id1), digitReduce(id2)
	percent := (int(math.Sqrt(float64(s1*s2))) + s.rng.rangeIn(0, 100)) % 100
	return LoveResult{Percent: percent}, nil
}

var dishes = []string{
	"mì", "cơm", "bún", "cây", "roi", "thịt heo", "thịt bò", "thịt bò Kobe", "đấm",
	"phở", "cháo", "hủ tiếu", "bánh mì", "bánh cuốn",
	"gà rán", "vịt quay", "nem rán", "bánh xèo", "bánh tráng trộn",
	"trà đá", "sinh tố bơ", "chè ba màu",
	"lẩu thái", "lẩu bò", "lẩu cá", "mì cay cấp độ 7",
	"cơm tấm", "cơm gà xối mỡ", "cơm chiên dương châu", "bún bò Huế",
	"cà ri gà", "gỏi cuốn", "bò lúc lắc", "chân gà nướng",
	"nộm bò khô", "xúc xích nướng", "kẹo mút", "kẹo cao su",
	"cơm chan nước mắt", "gan ngỗng",
}

var drinks = []string{
	"trà sữa", "nước lọc", "cà phê sữa", "cà phê đen", "trà đào", "trà chanh",
	"sinh tố bơ", "sinh tố xoài", "nước cam", "nước ép dứa", "soda chanh",
	"coca cola", "pepsi", "sữa tươi", "sữa đậu nành", "matcha latte",
	"trà ô long", "nước dừa", "sâm bí đao", "nước mía",
}

// Dish suggests today's meal: 40% a dish, 40% a drink instead of rice,
// 20% fasting.
func (s *Service) Dish() string {
	switch roll := s.rng.Float64(); {
	case roll < 0.4:
		return "Mình nghĩ hôm nay bạn nên ăn " + dishes[s.rng.Intn(len(dishes))]
	case roll < 0.8:
		return "Mình nghĩ hôm nay bạn nên uống " + drinks[s.rng.Intn(len(drinks))] + " thay cơm"
	default:
		return "Mình nghĩ hôm nay bạn nên nhịn đói!"
	}
}
