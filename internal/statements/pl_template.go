package statements

// Statutory profit and loss layout. Each row is evaluated on its natural
// balance side: expense rows debit minus credit, revenue rows credit
// minus debit. Composite rows (3, 11, 32, 51, 52, 54, 60, 61) are not
// template rows; the formula pass writes them into the row-value table.

type plRow struct {
	tpl         LineTemplate
	debitNormal bool
}

func profitLossRows() []plRow {
	return []plRow{
		{tpl: LineTemplate{Label: "I", Name: "Tržby z predaja tovaru", Row: 1, AccountCodes: []string{"604"}}},
		{tpl: LineTemplate{Label: "A", Name: "Náklady vynaložené na obstaranie predaného tovaru", Row: 2, AccountCodes: []string{"504"}}, debitNormal: true},
		{tpl: LineTemplate{
			Label: "II", Name: "Výroba", Row: 4,
			Children: []LineTemplate{
				{Label: "II.1", Name: "Tržby z predaja vlastných výrobkov a služieb", Row: 5, AccountCodes: []string{"601", "602"}},
				{Label: "II.2", Name: "Zmeny stavu vnútroorganizačných zásob", Row: 6, AccountCodes: []string{"611", "612", "613", "614"}},
				{Label: "II.3", Name: "Aktivácia", Row: 7, AccountCodes: []string{"621", "622", "623", "624"}},
			},
		}},
		{tpl: LineTemplate{
			Label: "B", Name: "Výrobná spotreba", Row: 8,
			Children: []LineTemplate{
				{Label: "B.1", Name: "Spotreba materiálu a energie", Row: 9, AccountCodes: []string{"501", "502", "503"}},
				{Label: "B.2", Name: "Služby", Row: 10, AccountCodes: []string{"511", "512", "513", "518"}},
			},
		}, debitNormal: true},
		{tpl: LineTemplate{
			Label: "C", Name: "Osobné náklady", Row: 12,
			Children: []LineTemplate{
				{Label: "C.1", Name: "Mzdové náklady", Row: 13, AccountCodes: []string{"521", "522"}},
				{Label: "C.2", Name: "Odmeny členom orgánov spoločnosti", Row: 14, AccountCodes: []string{"523"}},
				{Label: "C.3", Name: "Náklady na sociálne poistenie", Row: 15, AccountCodes: []string{"524", "525", "526"}},
				{Label: "C.4", Name: "Sociálne náklady", Row: 16, AccountCodes: []string{"527", "528"}},
			},
		}, debitNormal: true},
		{tpl: LineTemplate{Label: "D", Name: "Dane a poplatky", Row: 17, AccountCodes: []string{"531", "532", "538"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "E", Name: "Odpisy a opravné položky k dlhodobému majetku", Row: 18, AccountCodes: []string{"551", "553"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "III", Name: "Tržby z predaja dlhodobého majetku a materiálu", Row: 21, AccountCodes: []string{"641", "642"}}},
		{tpl: LineTemplate{Label: "F", Name: "Zostatková cena predaného dlhodobého majetku a materiálu", Row: 24, AccountCodes: []string{"541", "542"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "G", Name: "Tvorba rezerv a opravných položiek z hospodárskej činnosti", Row: 27, AccountCodes: []string{"552", "554", "555", "557", "558", "559"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "IV", Name: "Ostatné výnosy z hospodárskej činnosti", Row: 28, AccountCodes: []string{"644", "645", "646", "648"}}},
		{tpl: LineTemplate{Label: "H", Name: "Ostatné náklady na hospodársku činnosť", Row: 29, AccountCodes: []string{"543", "544", "545", "546", "548", "549"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "V", Name: "Prevod výnosov z hospodárskej činnosti", Row: 30, AccountCodes: []string{"697"}}},
		{tpl: LineTemplate{Label: "I.", Name: "Prevod nákladov na hospodársku činnosť", Row: 31, AccountCodes: []string{"597"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "VI", Name: "Tržby z predaja cenných papierov a podielov", Row: 33, AccountCodes: []string{"661"}}},
		{tpl: LineTemplate{Label: "J", Name: "Predané cenné papiere a podiely", Row: 34, AccountCodes: []string{"561"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "VII", Name: "Výnosy z dlhodobého finančného majetku", Row: 35, AccountCodes: []string{"665"}}},
		{tpl: LineTemplate{Label: "VIII", Name: "Výnosy z krátkodobého finančného majetku", Row: 39, AccountCodes: []string{"666"}}},
		{tpl: LineTemplate{Label: "K", Name: "Náklady na krátkodobý finančný majetok", Row: 40, AccountCodes: []string{"566"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "IX", Name: "Výnosy z precenenia cenných papierov", Row: 41, AccountCodes: []string{"664", "667"}}},
		{tpl: LineTemplate{Label: "L", Name: "Náklady na precenenie cenných papierov", Row: 42, AccountCodes: []string{"564", "567"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "X", Name: "Výnosové úroky", Row: 43, AccountCodes: []string{"662"}}},
		{tpl: LineTemplate{Label: "M", Name: "Nákladové úroky", Row: 44, AccountCodes: []string{"562"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "XI", Name: "Kurzové zisky", Row: 45, AccountCodes: []string{"663"}}},
		{tpl: LineTemplate{Label: "N", Name: "Kurzové straty", Row: 46, AccountCodes: []string{"563"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "XII", Name: "Ostatné výnosy z finančnej činnosti", Row: 47, AccountCodes: []string{"668"}}},
		{tpl: LineTemplate{Label: "O", Name: "Ostatné náklady na finančnú činnosť", Row: 48, AccountCodes: []string{"568", "569"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "XIII", Name: "Prevod finančných výnosov", Row: 49, AccountCodes: []string{"698"}}},
		{tpl: LineTemplate{Label: "P", Name: "Prevod finančných nákladov", Row: 50, AccountCodes: []string{"598"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "R", Name: "Daň z príjmov z bežnej činnosti", Row: 53, AccountCodes: []string{"591", "592", "595"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "XIV", Name: "Mimoriadne výnosy", Row: 57, AccountCodes: []string{"68"}}},
		{tpl: LineTemplate{Label: "S", Name: "Mimoriadne náklady", Row: 58, AccountCodes: []string{"58"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "T", Name: "Daň z príjmov z mimoriadnej činnosti", Row: 59, AccountCodes: []string{"593", "594"}}, debitNormal: true},
		{tpl: LineTemplate{Label: "U", Name: "Prevod podielov na výsledku hospodárenia spoločníkom", Row: 63, AccountCodes: []string{"596"}}, debitNormal: true},
	}
}
