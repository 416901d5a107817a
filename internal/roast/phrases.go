package roast

// valueTier buckets a wallet by total portfolio value. The tier fixes the
// score contribution, the persona and the main-roast pool.
type valueTier int

const (
	tierBroke   valueTier = iota // exactly $0
	tierDust                     // under $10
	tierRamen                    // under $100
	tierMid                      // under $1,000
	tierStacker                  // under $10,000
	tierWhale                    // $10,000 and up
)

// persona is a personality name, emoji and badge triple
type persona struct {
	name  string
	emoji string
	badge string
}

// tierProfile holds everything a value tier contributes to a roast
type tierProfile struct {
	delta      int
	mainRoasts []string // Main-roast pool; entries take the portfolio value
	personas   []persona
}

// classifyTier maps a portfolio value onto its tier
func classifyTier(portfolioValue float64) valueTier {
	switch {
	case portfolioValue == 0:
		return tierBroke
	case portfolioValue < 10:
		return tierDust
	case portfolioValue < 100:
		return tierRamen
	case portfolioValue < 1000:
		return tierMid
	case portfolioValue < 10000:
		return tierStacker
	default:
		return tierWhale
	}
}

var tierProfiles = map[valueTier]tierProfile{
	tierBroke: {
		delta: -30,
		mainRoasts: []string{
			"Portfolio value: $0. At least you can't lose any more money! 📉",
			"Zero dollars. Did you create this wallet just to get roasted? Mission accomplished, ghost.",
			"An empty wallet. Bold strategy - the market literally cannot hurt you.",
		},
		personas: []persona{
			{"Crypto Ghost", "👻", "Wallet Collector"},
			{"Phantom Holder", "🫥", "Invisible Portfolio"},
		},
	},
	tierDust: {
		delta: -20,
		mainRoasts: []string{
			"$%.2f portfolio. That's not even a decent lunch. Did you sell at the bottom?",
			"$%.2f to your name. One gas spike and you're back to zero.",
			"$%.2f. The blockchain charges more than that to say hello.",
		},
		personas: []persona{
			{"Dust Collector", "🪙", "Spare Change Champion"},
			{"Crumb Trader", "🥜", "Pocket Lint Investor"},
		},
	},
	tierRamen: {
		delta: -10,
		mainRoasts: []string{
			"$%.2f portfolio. You're practically living on ramen noodles. Keep grinding, I guess?",
			"$%.2f. Your portfolio is smaller than my last Uber ride.",
		},
		personas: []persona{
			{"Budget Trader", "🍜", "Ramen Noodle Investor"},
			{"Thrift Store Degen", "🛒", "Discount Rack Dabbler"},
		},
	},
	tierMid: {
		delta: 10,
		mainRoasts: []string{
			"$%.2f portfolio. Not bad, but also... not impressive. You're the middle child of crypto.",
			"$%.2f. Decent, but your mom still asks if you're 'doing that computer money thing'.",
		},
		personas: []persona{
			{"Casual Investor", "😐", "Middle of the Pack"},
			{"Moderate Investor", "📊", "Steady Eddie"},
		},
	},
	tierStacker: {
		delta: 20,
		mainRoasts: []string{
			"$%.2f portfolio. Okay, okay. You've got some bags. Still not quitting your day job though.",
			"$%.2f. Respectable stack. Shame about the entry prices, probably.",
		},
		personas: []persona{
			{"Serious Stacker", "💼", "Bag Builder"},
			{"Committed Accumulator", "🧱", "Brick by Brick"},
		},
	},
	tierWhale: {
		delta: 30,
		mainRoasts: []string{
			"$%.2f portfolio. Look at you, whale! Or wait... is this your parents' money?",
			"$%.2f?! Damn, save some liquidity for the rest of us! 🐋",
		},
		personas: []persona{
			{"Crypto Whale", "🐋", "Whale Alert"},
			{"Deep Pockets", "💰", "Exit Liquidity Donor"},
		},
	},
}

// memeKeywords flags top holdings that are meme coins. Matching is a
// case-insensitive substring check on both symbol and name.
var memeKeywords = []string{"bonk", "shib", "doge", "pepe", "wif", "floki", "inu", "moon", "elon"}

// Sub-roast phrasing pools, one per rule group. Placeholders are filled by
// the rule that fires.

var stakingDustLines = []string{
	"You staked $%.2f. Congrats on securing the network, soldier. 🪖",
	"$%.2f staked. The validators thank you for your sacrifice.",
}

var stakingHealthyLines = []string{
	"%.0f%% staked. Someone actually reads about yield. Reluctant respect.",
	"%.0f%% of the bag is staked. Responsible. Boring, but responsible.",
}

var stakingMaxiLines = []string{
	"%.0f%% staked. Look at you, earning that sweet 5%% APY. Retire by 2150! 🚀",
	"%.0f%% locked up for staking rewards. See you at retirement, in a century or so.",
}

var idleWalletLines = []string{
	"%.0f%% of your portfolio is just sitting in the wallet. Even a savings account is judging you.",
	"%.0f%% idle. Your money sleeps more than you do.",
}

var memeCoinLines = []string{
	"Your top holding is %s. Respectfully... seek help. This is a Wendy's. 🤦",
	"%s is your biggest position. The group chat got you again, didn't it?",
}

var concentrationLines = []string{
	"%.0f%% of your portfolio is %s. Ever heard of diversification? Or are you just that committed to poor decisions?",
	"%.0f%% in %s. That's not a portfolio, that's a hostage situation.",
}

var dumpingHoldingLines = []string{
	"%s is down %.1f%% in 24 hours and it's your top bag. Hope you like turbulence.",
	"Your biggest holding %s dropped %.1f%% today. Diamond hands or denial?",
}

var pumpingHoldingLines = []string{
	"%s is up %.1f%% today. Enjoy it, you'll be telling this story for years.",
	"+%.1f%% on %s in 24 hours. Screenshot it before it's gone.",
}

var bigBagLines = []string{
	"A $%.2f position in %s. Someone's actually conviction-betting. Bold.",
	"$%.2f parked in %s. That's real money. Who are you?",
}

var unverifiedLines = []string{
	"More unverified tokens than verified ones. Your wallet is a phishing museum.",
	"Mostly unverified tokens. Approving random contracts is a lifestyle, apparently.",
}

var tooManyPositionsLines = []string{
	"%d positions. That's not diversification, that's hoarding.",
	"%d different tokens. You collect bags like infinity stones, minus the power.",
}

var singlePositionLines = []string{
	"Exactly one position. Minimalism or cowardice? Either way, it's clean.",
	"One token. All eggs, one basket, zero apologies. Respect.",
}

var zeroValuePositionLines = []string{
	"%d worthless positions rotting in your wallet. A graveyard of rugs.",
	"%d positions worth exactly nothing. Each one was 'the next big thing', right?",
}

var failedTxLines = []string{
	"Only %.0f%% of your transactions succeed. The blockchain keeps charging you for practice swings.",
	"%.0f%% success rate. You pay full price for half the outcomes.",
}

var totalFeesLines = []string{
	"$%.2f in fees. You've personally funded a validator's vacation.",
	"$%.2f paid in fees. The network thanks you for your donation.",
}

var avgFeeLines = []string{
	"$%.4f average fee per transaction. Ever heard of waiting for low gas?",
	"Averaging $%.4f a transaction in fees. Patience is cheaper.",
}

var executeHeavyLines = []string{
	"Mostly 'execute' operations. Interacting with every contract you see. Brave.",
	"Your favorite operation is 'execute'. Sign first, read never.",
}

var receiveHeavyLines = []string{
	"Mostly receiving. You don't trade, you collect handouts. An airdrop farmer in the wild.",
	"Your wallet mostly receives. Passive income or just passive?",
}

var sendHeavyLines = []string{
	"Mostly sending. Your money checks in, says hi, and leaves.",
	"Your favorite operation is 'send'. Exit-only wallets have feelings too.",
}

var frequentTokenLines = []string{
	"%d trades on %s alone. You two should get a room.",
	"%s traded %d times. At this point it's a relationship, not a position.",
}

var inactiveLines = []string{
	"A transaction history but nothing in the last week. Gave up or locked out?",
	"Zero activity in seven days. Even your wallet took a vacation from your decisions.",
}

var overactiveLines = []string{
	"%d transactions this week. Even professional traders take a break. Your fingers must be tired from panic selling.",
	"%d transactions in seven days. Touch grass. Please.",
}

var highRiskLines = []string{
	"High failure rate on your transactions. You trade like it's a speedrun.",
	"Risk level: high. The mempool flinches when you show up.",
}

var noTransactionLines = []string{
	"Zero transactions. Did you create this wallet just to get roasted? Mission accomplished, ghost.",
	"No transaction history at all. The most profitable strategy you've tried so far.",
}

// flavorLines are general-purpose closers appended with a 30% chance
var flavorLines = []string{
	"Remember: it's not a loss until you sell. Or until you check the chart.",
	"Your wallet is a cautionary tale with a public address.",
	"Somewhere out there, an index fund is quietly outperforming all of this.",
	"On-chain forever. No deleting this one, champ.",
	"At least the blockchain remembers you, even if the gains don't.",
}
