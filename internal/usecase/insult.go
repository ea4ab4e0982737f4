package usecase

import (
	"math/rand/v2"
)

var insults = []string{
	"Your existence is an insult to every dimension.",
	"You're more useless than a Jerry at a Rick convention.",
	"Not even the most miserable dimension would want your DNA.",
	"Your incompetence spans the entire multiverse.",
	"You are proof that the universe sometimes gets it wrong.",
	"Any random Morty is worth more than you.",
	"Your brain is a portal to stupidity.",
	"The Galactic Federation wouldn't take what you make for free.",
	"You're the Jerry of Jerries.",
	"In no dimension are you the preferable option.",
	"You're not even a decent backup Morty.",
	"Your IQ doesn't even reach dimension C-137.",
	"Even the Cromulons would call you a pathetic show.",
	"You're the discarded draft of a side character.",
	"Your value to the multiverse is exactly zero.",
	"Not even a portal gun could save you from irrelevance.",
	"The dark matter formula is simpler than you.",
	"You're what's left when a Rick lands in the wrong dimension.",
	"Your DNA doesn't deserve a jar in the garage.",
	"At the Citadel of Ricks you'd be the laughing stock.",
	"You don't even rank as a memory parasite.",
	"Your contribution to the multiverse is negative.",
	"You're the universe's rounding error.",
	"A Jerry has more dignity than you on your best day.",
}

type InsultUsecase struct {
	insults []string
	pick    func(n int) int
}

func NewInsultUsecase() *InsultUsecase {
	return &InsultUsecase{insults: insults, pick: rand.IntN}
}

// Random returns one insult chosen uniformly.
func (uc *InsultUsecase) Random() string {
	return uc.insults[uc.pick(len(uc.insults))]
}
