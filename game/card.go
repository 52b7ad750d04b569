package game

// Event cards processed at the front of the event deck during EVENT.
// Unknown ids are ignored.
const (
	CardNoiseCorridor = "NOISE_CORRIDOR"
	CardNoiseRoom     = "NOISE_ROOM"
	CardBagDev        = "BAG_DEV"
	CardSpawnFromBag  = "SPAWN_FROM_BAG"
	CardOxygenLeak    = "OXYGEN_LEAK"
	CardFireRoom      = "FIRE_ROOM"
)

// TokenAdult is the bag token that spawns an intruder when drawn.
const TokenAdult = "ADULT"

// Exploration cards drawn when first entering an undiscovered room.
const (
	CardEntranceNoiseRoom     = "ENTRANCE_NOISE_ROOM"
	CardEntranceNoiseCorridor = "ENTRANCE_NOISE_CORRIDOR"
	CardEntranceCloseDoors    = "ENTRANCE_CLOSE_DOORS"
)
