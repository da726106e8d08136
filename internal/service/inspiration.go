package service

import (
	"fmt"

	"github.com/shayari/shayari-go/internal/crypto"
)

var inspirationLines = []string{
	"दिल से लिखो, दुनिया तक पहुंचाओ ✍️",
	"हर शब्द में छुपी है एक कहानी 📖",
	"मोहब्बत के अल्फाज़ दिल से निकलते हैं 💕",
	"शायरी में बयां है जिंदगी का हर रंग 🌈",
	"कलम से निकले जज्बात, दिल तक पहुंचे बात 🖋️",
	"इश्क़ की दास्तान, शायरी की जुबान 💝",
	"हर लफ्ज़ में छुपा है प्यार का एहसास 🌹",
	"दिल की बात कहने का सबसे खूबसूरत तरीका 💫",
	"शायरी है दिल की आवाज़, सुनो इसे खामोशी से 🎵",
	"मोहब्बत के नाम पर लिखी गई हर शायरी अमर है 🌟",
}

// InspirationFallback is served when the lines cannot be shuffled.
const InspirationFallback = "Dil se likho… ✍️"

// InspirationService serves the short lines shown on the landing page.
type InspirationService struct {
	lines []string
}

// NewInspirationService creates a new InspirationService.
func NewInspirationService() *InspirationService {
	return &InspirationService{lines: inspirationLines}
}

// Lines returns all inspiration lines in random order.
func (s *InspirationService) Lines() ([]string, error) {
	out, err := crypto.Shuffle(s.lines)
	if err != nil {
		return nil, fmt.Errorf("shuffling inspiration lines: %w", err)
	}
	return out, nil
}
