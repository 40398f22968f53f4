package event

import "strings"

// classifyRule pairs an event kind with its substring predicate.
type classifyRule struct {
	kind  Kind
	match func(string) bool
}

func contains(sub string) func(string) bool {
	return func(line string) bool { return strings.Contains(line, sub) }
}

func containsAny(subs ...string) func(string) bool {
	return func(line string) bool {
		for _, sub := range subs {
			if strings.Contains(line, sub) {
				return true
			}
		}
		return false
	}
}

// classifyRules is checked in order and the first match wins. The order
// matters: loose predicates like " folds" could in principle match inside a
// longer sentence, so more specific markers are checked first. Keep new
// rules mutually exclusive with the existing ones for well-formed exports.
var classifyRules = []classifyRule{
	{KindPlayerStacks, contains("Player stacks")},
	{KindRequests, contains("requested a seat")},
	{KindApproved, contains("The admin approved")},
	{KindJoined, contains("joined the game")},
	{KindMyCards, contains("Your hand is ")},
	{KindSmallBlind, contains("posts a small blind")},
	{KindBigBlind, contains("posts a big blind")},
	{KindFolds, contains(" folds")},
	{KindCalls, contains(" calls ")},
	{KindRaises, containsAny(" raises to ", " bets ")},
	{KindChecks, contains(" checks")},
	{KindWins, contains(" collected ")},
	{KindShows, contains(" shows a ")},
	{KindQuits, contains("quits the game")},
	{KindUndealt, contains("Undealt cards")},
	{KindFlop, containsAny("Flop: ", "flop: ")},
	{KindTurn, containsAny("Turn: ", "turn: ")},
	{KindRiver, containsAny("River: ", "river: ")},
	{KindStandsUp, contains("stand up with")},
	{KindSitsIn, contains("sit back with")},
}

// Classify determines which event kind a raw line represents. The second
// return value is false when no predicate matches; such lines are noise
// ("game started" banners and the like) and it is the caller's job to count
// them rather than silently lose them.
func Classify(line string) (Kind, bool) {
	for _, rule := range classifyRules {
		if rule.match(line) {
			return rule.kind, true
		}
	}
	return "", false
}
