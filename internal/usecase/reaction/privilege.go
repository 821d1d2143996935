package reaction

import "github.com/shyapp/shy-backend/internal/domain"

// directMessageRules is the full rule table for skipping the invitation
// step, keyed by the ordered (sender, receiver) gender pair. The rule is
// asymmetric on purpose: femme→homme is allowed, homme→femme is not. Any
// future change touches only this table.
var directMessageRules = map[[2]domain.Gender]bool{
	{domain.GenderFemme, domain.GenderHomme}:           true,
	{domain.GenderNonBinaire, domain.GenderNonBinaire}: true,
}

// CanDirectMessage reports whether the sender may message the receiver
// immediately, without a prior reaction and connection.
func CanDirectMessage(senderGender, receiverGender domain.Gender) bool {
	return directMessageRules[[2]domain.Gender{senderGender, receiverGender}]
}
