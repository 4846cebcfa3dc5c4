package cardstore

import (
	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/pkg/models"
)

var samples = map[language.Code]models.Collection{
	language.ES: {
		{Front: "Hello", Back: "Hola"},
		{Front: "Thank you", Back: "Gracias"},
		{Front: "Water", Back: "Agua"},
		{Front: "School", Back: "Escuela"},
		{Front: "Friend", Back: "Amigo"},
	},
	language.ZH: {
		{Front: "Hello", Back: "你好"},
		{Front: "Thank you", Back: "谢谢"},
		{Front: "Water", Back: "水"},
		{Front: "School", Back: "学校"},
		{Front: "Friend", Back: "朋友"},
	},
}

// Samples returns a fresh copy of the built-in cards for lang. Languages
// without samples get an empty collection.
func Samples(lang language.Code) models.Collection {
	return samples[lang].Clone()
}
