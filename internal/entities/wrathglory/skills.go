package wrathglory

// SkillID is the canonical identifier of a skill
type SkillID string

// Skill identifiers
const (
	Athletics      SkillID = "Athletics"
	Awareness      SkillID = "Awareness"
	BallisticSkill SkillID = "BallisticSkill"
	Cunning        SkillID = "Cunning"
	Deception      SkillID = "Deception"
	Insight        SkillID = "Insight"
	Intimidation   SkillID = "Intimidation"
	Investigation  SkillID = "Investigation"
	Leadership     SkillID = "Leadership"
	Medicae        SkillID = "Medicae"
	Persuasion     SkillID = "Persuasion"
	Pilot          SkillID = "Pilot"
	PsychicMastery SkillID = "PsychicMastery"
	Scholar        SkillID = "Scholar"
	Stealth        SkillID = "Stealth"
	Survival       SkillID = "Survival"
	Tech           SkillID = "Tech"
	WeaponSkill    SkillID = "WeaponSkill"
)

var skillRankBounds = NewRatingBounds(0, 8)

// Skill is a purchasable rank tied to one attribute. Its RatingBounds cover
// the rank; the total adds the related attribute.
type Skill struct {
	RatingBounds
	ID        SkillID
	FullName  string
	Attribute AttributeID
}

// TotalBounds returns the range of rank plus related attribute
func (s Skill) TotalBounds() RatingBounds {
	related, _ := GetAttribute(s.Attribute)
	return s.RatingBounds.Add(related.RatingBounds)
}

// Total returns the skill total for a rank and related attribute rating
func (s Skill) Total(rank, attribute int) int {
	return rank + attribute
}

func newSkill(id SkillID, fullName string, attribute AttributeID) Skill {
	return Skill{RatingBounds: skillRankBounds, ID: id, FullName: fullName, Attribute: attribute}
}

var skills = []Skill{
	newSkill(Athletics, "Athletics", Strength),
	newSkill(Awareness, "Awareness", Intellect),
	newSkill(BallisticSkill, "Ballistic Skill", Agility),
	newSkill(Cunning, "Cunning", Fellowship),
	newSkill(Deception, "Deception", Fellowship),
	newSkill(Insight, "Insight", Fellowship),
	newSkill(Intimidation, "Intimidation", Willpower),
	newSkill(Investigation, "Investigation", Intellect),
	newSkill(Leadership, "Leadership", Willpower),
	newSkill(Medicae, "Medicae", Intellect),
	newSkill(Persuasion, "Persuasion", Fellowship),
	newSkill(Pilot, "Pilot", Agility),
	newSkill(PsychicMastery, "Psychic Mastery", Willpower),
	newSkill(Scholar, "Scholar", Intellect),
	newSkill(Stealth, "Stealth", Agility),
	newSkill(Survival, "Survival", Willpower),
	newSkill(Tech, "Tech", Intellect),
	newSkill(WeaponSkill, "Weapon Skill", Initiative),
}

var skillsByKey = func() map[string]Skill {
	m := make(map[string]Skill, 2*len(skills))
	for _, s := range skills {
		m[string(s.ID)] = s
		m[s.FullName] = s
	}
	return m
}()

// Skills returns the skill catalogue in alphabetical order
func Skills() []Skill {
	out := make([]Skill, len(skills))
	copy(out, skills)
	return out
}

// LookupSkill resolves an identifier or full name such as "Ballistic Skill"
func LookupSkill(key string) (Skill, bool) {
	s, ok := skillsByKey[key]
	return s, ok
}

// GetSkill returns the skill with the given identifier
func GetSkill(id SkillID) (Skill, bool) {
	return LookupSkill(string(id))
}

// SkillRankBounds returns the rank range shared by all skills
func SkillRankBounds() RatingBounds {
	return skillRankBounds
}
