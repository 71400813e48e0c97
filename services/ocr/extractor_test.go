package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Run("date of birth on the keyword line", func(t *testing.T) {
		record := Extract("DOB 05/12/1990", "DRIVERS_LICENSE")
		assert.Equal(t, "05/12/1990", record.DOB)
	})

	t.Run("date of birth on the line after the keyword", func(t *testing.T) {
		record := Extract("DATE OF BIRTH\n05/12/1990", "DRIVERS_LICENSE")
		assert.Equal(t, "05/12/1990", record.DOB)
	})

	t.Run("comma name splits into last and first", func(t *testing.T) {
		record := Extract("NAME\nSMITH, JOHN", "PASSPORT")
		assert.Equal(t, "JOHN", record.FirstName)
		assert.Equal(t, "SMITH", record.LastName)
	})

	t.Run("space-separated name takes first and final tokens", func(t *testing.T) {
		record := Extract("NAME\nJOHN ROBERT SMITH", "PASSPORT")
		assert.Equal(t, "JOHN", record.FirstName)
		assert.Equal(t, "SMITH", record.LastName)
	})

	t.Run("full document text", func(t *testing.T) {
		text := "DL D1234567\n" +
			"NAME\n" +
			"SMITH, JOHN\n" +
			"DOB 05/12/1990\n" +
			"EXP 05/12/2030\n" +
			"ADDRESS\n" +
			"123 MAIN ST\n" +
			"SPRINGFIELD IL 62704"

		record := Extract(text, "DRIVERS_LICENSE")
		assert.Equal(t, "JOHN", record.FirstName)
		assert.Equal(t, "SMITH", record.LastName)
		assert.Equal(t, "05/12/1990", record.DOB)
		assert.Equal(t, "05/12/2030", record.ExpiryDate)
		assert.Equal(t, "D1234567", record.DocumentNumber)
		assert.Equal(t, "123 MAIN ST", record.StreetName)
		assert.Equal(t, "IL", record.State)
		assert.Equal(t, "62704", record.PostalCode)
	})

	t.Run("text without keywords yields an empty record", func(t *testing.T) {
		record := Extract("lorem ipsum\ndolor sit amet", "PASSPORT")
		assert.Empty(t, record.FirstName)
		assert.Empty(t, record.LastName)
		assert.Empty(t, record.DOB)
		assert.Empty(t, record.ExpiryDate)
		assert.Empty(t, record.DocumentNumber)
	})

	t.Run("empty input yields an empty record", func(t *testing.T) {
		record := Extract("", "PASSPORT")
		assert.Empty(t, record.DOB)
	})

	t.Run("identical input yields identical output", func(t *testing.T) {
		text := "NAME\nDOE, JANE\nDOB 01/01/2000"
		assert.Equal(t, Extract(text, "PASSPORT"), Extract(text, "PASSPORT"))
	})
}

func TestRules(t *testing.T) {
	t.Run("SplitLines drops blanks and trims", func(t *testing.T) {
		lines := SplitLines("  a  \n\n b\n")
		assert.Equal(t, []string{"a", "b"}, lines)
	})

	t.Run("ExpiryDate matches VALID UNTIL phrasing", func(t *testing.T) {
		expiry, ok := ExpiryDate(SplitLines("VALID UNTIL\n31-12-2027"))
		assert.True(t, ok)
		assert.Equal(t, "31-12-2027", expiry)
	})

	t.Run("DocumentNumber skips short tokens and reads the next line", func(t *testing.T) {
		number, ok := DocumentNumber(SplitLines("ID NO.\nA1B2C3D4"))
		assert.True(t, ok)
		assert.Equal(t, "A1B2C3D4", number)
	})

	t.Run("Address without trailing lines does not match", func(t *testing.T) {
		_, ok := Address(SplitLines("ADDRESS"))
		assert.False(t, ok)
	})
}
