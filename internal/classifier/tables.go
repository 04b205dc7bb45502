package classifier

import "github.com/xaenox/shop-assistant/internal/models"

// intentPattern is one scoring rule: a regex over normalized text and
// the weight a match contributes to the intent's score.
type intentPattern struct {
	Pattern string
	Weight  int
}

// intentOrder fixes iteration order so classification stays
// deterministic regardless of map ordering.
var intentOrder = []models.Intent{
	models.IntentTrackOrder,
	models.IntentProductInfo,
	models.IntentRecommendation,
	models.IntentComplaint,
	models.IntentCompliment,
	models.IntentFormHelp,
	models.IntentEscalate,
	models.IntentPersonalInfo,
	models.IntentFeedback,
}

var intentTable = map[models.Intent][]intentPattern{
	models.IntentTrackOrder: {
		{`where is my (order|package|delivery)`, 3},
		{`\btrack(ing)?\b`, 3},
		{`order status`, 3},
		{`delivery status`, 3},
		{`my (order|package|parcel)`, 2},
		{`\b(shipped|shipping|dispatch)\b`, 2},
		{`when will .* arrive`, 3},
	},
	models.IntentProductInfo: {
		{`how much`, 3},
		{`in stock`, 3},
		{`\bprice\b`, 2},
		{`\bcost\b`, 2},
		{`\bproduct\b`, 2},
		{`\b(size|sizing|material|color|colour)\b`, 2},
		{`\b(available|availability)\b`, 2},
		{`\b(specification|specifications|details|warranty)\b`, 2},
	},
	models.IntentRecommendation: {
		{`\brecommend`, 3},
		{`\bsuggest`, 3},
		{`what should i (buy|get|choose)`, 3},
		{`looking for`, 2},
		{`best .* for`, 2},
		{`\bsimilar\b`, 2},
		{`\bgift\b`, 2},
	},
	models.IntentComplaint: {
		{`\brefund\b`, 3},
		{`\bbroken\b`, 3},
		{`not working`, 3},
		{`\bdamaged\b`, 3},
		{`\bdefective\b`, 3},
		{`\bcomplain(t|ing)?\b`, 3},
		{`wrong (item|product|size)`, 3},
		{`never arrived`, 3},
		{`\bdisappointed\b`, 2},
		{`\b(terrible|horrible|awful|worst)\b`, 2},
		{`\breturn\b`, 2},
		{`\blate\b`, 2},
	},
	models.IntentCompliment: {
		{`\bthank(s| you)\b`, 2},
		{`love (it|this|your)`, 3},
		{`well done`, 3},
		{`\b(great|awesome|excellent|amazing|wonderful)\b`, 2},
		{`\bperfect\b`, 2},
		{`\bhelpful\b`, 2},
	},
	models.IntentFormHelp: {
		{`\bform\b`, 3},
		{`fill (in|out)`, 3},
		{`return request`, 3},
		{`how do i (submit|apply|register)`, 3},
		{`sign up`, 2},
		{`\bapplication\b`, 2},
	},
	models.IntentEscalate: {
		{`human agent`, 3},
		{`speak to someone`, 3},
		{`talk to a human`, 3},
		{`real person`, 3},
		{`\bsupervisor\b`, 3},
		{`customer service representative`, 3},
		{`\bagent\b`, 2},
		{`\bhuman\b`, 2},
	},
	models.IntentPersonalInfo: {
		{`my (account|profile|preferences)`, 3},
		{`change my (address|email|password)`, 3},
		{`my name is`, 3},
		{`update my`, 2},
		{`call me`, 2},
	},
	models.IntentFeedback: {
		{`\bfeedback\b`, 3},
		{`i would rate`, 3},
		{`\b(rate|rating)\b`, 2},
		{`\breview\b`, 2},
	},
}

// categoryTable maps each intent onto the shared category set.
var categoryTable = map[models.Intent]models.Category{
	models.IntentTrackOrder:     models.CategoryOrder,
	models.IntentProductInfo:    models.CategoryProduct,
	models.IntentRecommendation: models.CategoryRecommendation,
	models.IntentComplaint:      models.CategoryComplaint,
	models.IntentCompliment:     models.CategoryFeedback,
	models.IntentFormHelp:       models.CategorySupport,
	models.IntentEscalate:       models.CategorySupport,
	models.IntentPersonalInfo:   models.CategoryAccount,
	models.IntentFeedback:       models.CategoryFeedback,
	models.IntentGeneral:        models.CategoryGeneral,
}

// followUpPatterns mark short anaphoric turns ("what about price?") that
// lean on the previous category for meaning.
var followUpPatterns = []string{
	`^what about\b`,
	`^how about\b`,
	`^and\b`,
	`^(that one|this one|the other)\b`,
	`^(why|when|where)\?*$`,
}
