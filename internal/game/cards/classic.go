package cards

// ClassicChance returns the chance deck matching the classic London board.
// Movement targets reference that board's tile indexes.
func ClassicChance() *Deck {
	return NewDeck([]*Card{
		{Kind: KindAdvanceTo, Amounts: []int{0}, Text: "Advance to %0%."},
		{Kind: KindAdvanceTo, Amounts: []int{24}, Text: "Advance to %24%."},
		{Kind: KindAdvanceTo, Amounts: []int{39}, Text: "Advance to %39%."},
		{Kind: KindAdvanceTo, Amounts: []int{11}, Text: "Advance to %11%."},
		{Kind: KindAdvanceTo, Amounts: []int{5}, Text: "Take a trip to %5%."},
		{Kind: KindGoBackTo, Amounts: []int{-3}, Text: "Go back three spaces."},
		{Kind: KindJail, Text: "Go to jail. Move directly to jail. Do not pass Go, do not collect your salary."},
		{Kind: KindPay, Amounts: []int{25, 100}, Text: "Make general repairs on all your properties: pay 25 for each house and 100 for each hotel."},
		{Kind: KindPay, Amounts: []int{15}, Text: "Speeding fine. Pay 15."},
		{Kind: KindPay, Amounts: []int{150}, Text: "Pay school fees of 150."},
		{Kind: KindPayOrDraw, Amounts: []int{10, DeckChest}, Text: "Pay a 10 fine or take a community chest card."},
		{Kind: KindReceive, Amounts: []int{50}, Text: "The bank pays you a dividend of 50."},
		{Kind: KindReceive, Amounts: []int{150}, Text: "Your building loan matures. Collect 150."},
		{Kind: KindReceive, Amounts: []int{100}, Text: "You have won a crossword competition. Collect 100."},
	})
}

// ClassicChest returns the community chest deck matching the classic
// London board.
func ClassicChest() *Deck {
	return NewDeck([]*Card{
		{Kind: KindAdvanceTo, Amounts: []int{0}, Text: "Advance to %0%."},
		{Kind: KindGoBackTo, Amounts: []int{1}, Text: "Go back to %1%."},
		{Kind: KindJail, Text: "Go to jail. Move directly to jail. Do not pass Go, do not collect your salary."},
		{Kind: KindPay, Amounts: []int{50}, Text: "Doctor's fee. Pay 50."},
		{Kind: KindPay, Amounts: []int{100}, Text: "Pay hospital fees of 100."},
		{Kind: KindPay, Amounts: []int{40, 115}, Text: "You are assessed for street repairs: pay 40 per house and 115 per hotel."},
		{Kind: KindReceive, Amounts: []int{200}, Text: "Bank error in your favour. Collect 200."},
		{Kind: KindReceive, Amounts: []int{50}, Text: "From the sale of stock you get 50."},
		{Kind: KindReceive, Amounts: []int{100}, Text: "Your holiday fund matures. Collect 100."},
		{Kind: KindReceive, Amounts: []int{20}, Text: "Income tax refund. Collect 20."},
		{Kind: KindReceive, Amounts: []int{10}, TargetsPlayers: true, Text: "It is your birthday. Collect 10 from every player."},
		{Kind: KindReceive, Amounts: []int{100}, Text: "Life insurance matures. Collect 100."},
		{Kind: KindReceive, Amounts: []int{25}, Text: "Receive a 25 consultancy fee."},
		{Kind: KindReceive, Amounts: []int{10}, Text: "You have won second prize in a beauty contest. Collect 10."},
		{Kind: KindReceive, Amounts: []int{100}, Text: "You inherit 100."},
	})
}
