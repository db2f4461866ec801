// Package models - compiled-in defaults used to initialise an empty store.
// File: models/seed.go
package models

// SeedSingers is the initial contest roster.
var SeedSingers = []Singer{
	{ID: 1, Name: "Arisa", Song: "Magica favola", CoverSong: "Quello che le donne non dicono (feat. Coro del Teatro Regio di Parma)"},
	{ID: 2, Name: "Bambole di Pezza", Song: "Resta con me", CoverSong: "Occhi di gatto (feat. Cristina D’Avena)"},
	{ID: 3, Name: "Chiello", Song: "Ti penso sempre", CoverSong: "Mi sono innamorato di te (feat. Morgan)"},
	{ID: 4, Name: "Dargen D’Amico", Song: "AI AI", CoverSong: "Su di noi (feat. Pupo & Fabrizio Bosso)"},
	{ID: 5, Name: "Ditonellapiaga", Song: "Che fastidio!", CoverSong: "The Lady Is a Tramp (feat. TonyPitony)"},
	{ID: 6, Name: "Eddie Brock", Song: "Avvoltoi", CoverSong: "Portami via (feat. Fabrizio Moro)"},
	{ID: 7, Name: "Elettra Lamborghini", Song: "Voilà", CoverSong: "Aserejé (feat. Las Ketchup)"},
	{ID: 8, Name: "Enrico Nigiotti", Song: "Ogni volta che non so volare", CoverSong: "En e Xanax (feat. Alfa)"},
	{ID: 9, Name: "Ermal Meta", Song: "Stella stellina", CoverSong: "Golden Hour (feat. Dardust)"},
	{ID: 10, Name: "Fedez & M. Masini", Song: "Male necessario", CoverSong: "Meravigliosa creature (feat. Stjepan Hauser)"},
	{ID: 11, Name: "Francesco Renga", Song: "Il meglio di me", CoverSong: "Ragazzo solo, ragazza sola (feat. Giusy Ferreri)"},
	{ID: 12, Name: "Fulminacci", Song: "Stupida sfortuna", CoverSong: "Parole parole (feat. Francesca Fagnani)"},
	{ID: 13, Name: "J-Ax", Song: "Italia Starter Pack", CoverSong: "E la vita, la vita (feat. Ligera County Fam.)"},
	{ID: 14, Name: "LDA & Aka 7even", Song: "Poesie clandestine", CoverSong: "Andamento lento (feat. Tullio De Piscopo)"},
	{ID: 15, Name: "Leo Gassmann", Song: "Naturale", CoverSong: "Era già tutto previsto (feat. Aiello)"},
	{ID: 16, Name: "Levante", Song: "Sei tu", CoverSong: "I maschi (feat. Gaia)"},
	{ID: 17, Name: "Luchè", Song: "Labirinto", CoverSong: "Falco a metà (feat. Gianluca Grignani)"},
	{ID: 18, Name: "Malika Ayane", Song: "Animali notturni", CoverSong: "Mi sei scoppiato di dentro al cuore (feat. Claudio Santamaria)"},
	{ID: 19, Name: "Mara Sattei", Song: "Le cose che non sai di me", CoverSong: "L’ultimo bacio (feat. Mecna)"},
	{ID: 20, Name: "M. Ant. & Colombre", Song: "La felicità e basta", CoverSong: "Il mondo (feat. Brunori Sas)"},
	{ID: 21, Name: "Michele Bravi", Song: "Prima o poi", CoverSong: "Domani è un altro giorno (feat. Fiorella Mannoia)"},
	{ID: 22, Name: "Nayt", Song: "Prima che", CoverSong: "La canzone dell’amore perduto (feat. Joan Thiele)"},
	{ID: 23, Name: "Patty Pravo", Song: "Opera", CoverSong: "Ti lascio una canzone (feat. Timofej Andrijashenko)"},
	{ID: 24, Name: "Raf", Song: "Ora e per sempre", CoverSong: "The Riddle (feat. The Kolors)"},
	{ID: 25, Name: "Sal Da Vinci", Song: "Per sempre sì", CoverSong: "Cinque giorni (feat. Michele Zarrillo)"},
	{ID: 26, Name: "Samurai Jay", Song: "Ossessione", CoverSong: "Baila morena (feat. Belén Rodríguez & Roy Paci)"},
	{ID: 27, Name: "Sayf", Song: "Tu mi piaci tanto", CoverSong: "Hit the road Jack (feat. Alex Britti & Mario Biondi)"},
	{ID: 28, Name: "Serena Brancale", Song: "Qui con me", CoverSong: "Besame mucho (feat. Gregory Porter & Delia)"},
	{ID: 29, Name: "Tommaso Paradiso", Song: "I romantici", CoverSong: "L’ultima luna (feat. Stadio)"},
	{ID: 30, Name: "Tredici Pietro", Song: "Uomo che cade", CoverSong: "Vita (feat. Galeffi, Fudasca & Band)"},
}

// SeedOperators maps operator username -> access code.
var SeedOperators = map[string]string{
	"fcascone":    "0303",
	"tberetta":    "0707",
	"slevato":     "6666",
	"dponticella": "7777",
	"lcolonnata":  "7878",
	"cmattioni":   "6325",
	"etaravacci":  "1111",
	"ggalofaro":   "4568",
	"lcattaneo":   "5854",
	"cbarattelli": "2801",
	"cbonandi":    "9999",
	"mriva":       "5548",
	"cdicembre":   "2911",
	"adurnwalder": "2424",
	"cmascolo":    "3569",
	"isalvati":    "7845",
	"lbusetti":    "1591",
	"lgiannini":   "7537",
	"vucchino":    "4564",
	"lorenzov":    "1671",
	"sceppodomo":  "3493",
	AdminUsername: "4545",
}

// SeedDisplayNames maps operator username -> display name.
var SeedDisplayNames = map[string]string{
	"fcascone":    "Fra",
	"tberetta":    "Tommi",
	"slevato":     "LaPapessa",
	"dponticella": "Ponti",
	"lcolonnata":  "Laura",
	"cmattioni":   "Cristian",
	"etaravacci":  "Elena",
	"ggalofaro":   "Giovanni",
	"lcattaneo":   "Lollo",
	"cbarattelli": "Chiara",
	"cbonandi":    "Claudio",
	"mriva":       "Marta",
	"cdicembre":   "Cristiana",
	"adurnwalder": "Aaron",
	"cmascolo":    "Carolina",
	"isalvati":    "Ivan",
	"lbusetti":    "Luca",
	"lgiannini":   "Susy",
	"vucchino":    "Virginia",
	"lorenzov":    "Lorenzo",
	"sceppodomo":  "Sceppodomo",
	AdminUsername: "Administrator",
}

// DefaultDocument builds the initial document for a fresh contest:
// every chart hidden, voting open for evening 1 only, nobody hidden.
func DefaultDocument() *ContestDocument {
	doc := &ContestDocument{
		Operators:       cloneStringMap(SeedOperators),
		DisplayNames:    cloneStringMap(SeedDisplayNames),
		PersonnelPhotos: map[string]string{},
		SingersList:     append([]Singer(nil), SeedSingers...),
		Votes:           GlobalVotes{},
		VotersProgress:  VotersProgress{},
		LockedCharts:    map[string]bool{ViewTotal.Key(): true},
		LockedVoting:    map[int]bool{},
		HiddenSingers:   map[int][]int{},
	}
	for _, evening := range Evenings {
		doc.Votes[evening] = map[string]map[int][]float64{}
		doc.LockedCharts[View(evening).Key()] = true
		doc.LockedVoting[evening] = evening != 1
		doc.HiddenSingers[evening] = []int{}
	}
	for _, singer := range doc.SingersList {
		if singer.ID >= doc.NextSingerID {
			doc.NextSingerID = singer.ID + 1
		}
	}
	return doc
}
