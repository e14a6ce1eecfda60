package minimodem

/*------------------------------------------------------------------
 *
 * Purpose:	ITA2 (Baudot-Murray) code tables, US commercial TTY variant.
 *		Public-domain standard data, not teacher-sourced.
 *
 *---------------------------------------------------------------*/

const (
	baudotFIGS = 0x1B
	baudotLTRS = 0x1F
)

// baudotLettersTable and baudotFiguresTable are indexed by the 5-bit frame
// code (0-31). A zero entry means the code is unassigned in that table and
// decodes to '.'.
var baudotLettersTable = [32]byte{
	0:  0, // blank
	1:  'E',
	2:  '\n', // LF
	3:  'A',
	4:  ' ',
	5:  'S',
	6:  'I',
	7:  'U',
	8:  '\r', // CR
	9:  'D',
	10: 'R',
	11: 'J',
	12: 'N',
	13: 'F',
	14: 'C',
	15: 'K',
	16: 'T',
	17: 'Z',
	18: 'L',
	19: 'W',
	20: 'H',
	21: 'Y',
	22: 'P',
	23: 'Q',
	24: 'O',
	25: 'B',
	26: 'G',
	27: 0, // FIGS
	28: 'M',
	29: 'X',
	30: 'V',
	31: 0, // LTRS
}

var baudotFiguresTable = [32]byte{
	0:  0,
	1:  '3',
	2:  '\n',
	3:  '-',
	4:  ' ',
	5:  '\a', // BEL
	6:  '8',
	7:  '7',
	8:  '\r',
	9:  '$',
	10: '4',
	11: '\'',
	12: ',',
	13: '!',
	14: ':',
	15: '(',
	16: '5',
	17: '"',
	18: ')',
	19: '2',
	20: '#',
	21: '6',
	22: '0',
	23: '1',
	24: '9',
	25: '?',
	26: '&',
	27: 0,
	28: '.',
	29: '/',
	30: ';',
	31: 0,
}

var baudotLettersEncode = reverseBaudotTable(baudotLettersTable)
var baudotFiguresEncode = reverseBaudotTable(baudotFiguresTable)

func reverseBaudotTable(table [32]byte) map[byte]int {
	m := make(map[byte]int, 32)
	for code, ch := range table {
		if ch == 0 {
			continue
		}
		if _, exists := m[ch]; !exists {
			m[ch] = code
		}
	}
	return m
}
