package lexicon

// General financial tone words plus market and crypto vocabulary.

var positiveWords = []string{
	"achieve", "adoption", "approval", "approve", "approved", "approves",
	"benefit", "better", "boost", "boosts", "breakout", "bull", "bullish",
	"climb", "climbs", "gain", "gains", "good", "great", "growth", "high",
	"highs", "improve", "improved", "inflow", "inflows", "innovation",
	"jump", "jumps", "launch", "launches", "leader", "leading", "milestone",
	"optimism", "optimistic", "outperform", "outperforms", "partnership",
	"positive", "profit", "profitable", "progress", "rally", "rallies",
	"rebound", "rebounds", "record", "recovers", "recovery", "rise", "rises",
	"robust", "soar", "soars", "solid", "strength", "strong", "stronger",
	"success", "successful", "surge", "surges", "upbeat", "upgrade",
	"upgrades", "uptrend", "win", "wins", "winning",
}

var negativeWords = []string{
	"adverse", "ban", "bans", "bear", "bearish", "collapse", "collapses",
	"concern", "concerns", "crackdown", "crash", "crashes", "crisis",
	"damage", "decline", "declines", "delist", "delisted", "downturn",
	"drop", "drops", "dump", "dumps", "exploit", "exploited", "fail",
	"failure", "fall", "falls", "fear", "fears", "fine", "fined", "fraud",
	"hack", "hacked", "headwind", "investigation", "lawsuit", "liquidation",
	"liquidations", "loss", "losses", "negative", "outflow", "outflows",
	"plunge", "plunges", "poor", "recession", "risk", "risks", "scam",
	"selloff", "slide", "slides", "slip", "slips", "slowdown", "slump",
	"slumps", "sue", "sued", "tumble", "tumbles", "uncertainty",
	"underperform", "volatile", "warning", "weak", "weakness", "worse",
	"worst",
}
