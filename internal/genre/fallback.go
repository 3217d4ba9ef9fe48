package genre

// Fallback is used when the catalog cannot list its genres.
var Fallback = []string{
	"pop", "rock", "hip-hop", "jazz", "classical", "electronic", "metal", "country",
	"indie", "folk", "blues", "soul", "punk", "funk", "disco", "reggae", "gospel",
	"r&b", "trap", "lofi", "house", "techno", "samba", "sertanejo", "pagode",
	"forro", "axé", "mpb", "bossa nova", "emo", "emocore", "hardcore", "grunge",
	"ska", "drum and bass", "dubstep", "trance", "k-pop", "j-pop", "c-pop",
	"rap", "reggaeton", "dancehall", "mariachi", "tango", "flamenco", "blues rock",
	"alternative", "shoegaze", "post-rock", "new wave", "synthpop", "garage rock",
	"progressive rock", "hard rock", "heavy metal", "black metal", "death metal",
	"power metal", "nu metal", "metalcore", "math rock", "stoner rock", "post-punk",
	"art rock", "symphonic metal", "industrial", "opera", "ambient", "chillout",
	"minimal", "experimental", "downtempo", "psych rock", "neo soul", "boogie",
	"swing", "bebop", "latin", "afrobeat", "highlife", "cumbia", "bachata",
	"zouk", "soca", "balkan", "gypsy jazz", "drone", "hyperpop", "vaporwave",
	"phonk", "chiptune", "soundtrack", "video game music", "score", "epic",
	"medieval", "chant", "bluegrass", "americana", "cajun", "zydeco",
	"bolero", "tropical", "celtic", "world music", "indian classical",
	"hindustani", "kathak", "ghazal", "qawwali", "persian", "turkish",
	"greek", "arabic", "fado", "mandopop", "afrobeats", "drill",
	"grime", "jazz fusion", "smooth jazz", "lounge", "baroque", "chamber music",
	"musical", "christmas", "caribbean", "island", "hawaiian", "polka", "yodeling",
}
