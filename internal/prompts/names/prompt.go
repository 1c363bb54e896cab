// Package names holds the prompt and output schema for beautiful-name
// extraction from scriptural text batches.
package names

import (
	"fmt"
	"strings"
)

// taskPrompt is the naming-criteria policy and output-field requirements.
// The %s slots are, in order: the source reference and the exclusion block.
const taskPrompt = `You are a Sanskrit expert interested in identifying beautiful names that are
in Sanskrit. The above input comes from the following reference: %s,
with all the Sanskrit verses transliterated, word-to-word Sanskrit-to-English
translations, verse translations, and purports. Your task is to find all relevant
Sanskrit names from the above text. These names will be used by someone who gives
new names to people of all ages looking to be initiated into the disciplic
succession of ISKCON, so feel free to include names of any and all lengths.
HOWEVER, you MUST make sure to follow the given criteria for names.

%s

The following is the criteria for the names:

Names of Krishna
Names of Krishna's incarnations (ex. names of Caitanya, Balaram, Rama, etc.)
Names of Krishna's male devotees (ex. acaryas, etc.)
Names of Krishna's female devotees (ex. gopis, radha, etc.)
Names of Krishna's animals and pets (ex. hamsi, etc.)
Qualities of Krishna (ex. face, feet, kindness, mercy, etc.)
Qualities of Krishna's devotees (ex. desire-fulfilling trees, etc.)
Qualities of bhakti and devotional practice (ex. prema, etc.)
Names of books (ex. gopala-campu)
Names of holy places (ex. vrindavan, etc.)

Your output must include the name, definition, context around the name,
the verse number as reference, the criteria category, AND the gender
(male/female/neutral). For example:

"Vāsudeva
Definition: Son of Vasudeva; the divine son of Vasudeva and Devakī
Context: This is the primary name invoked in the opening verse of
Śrīmad-Bhāgavatam. The name indicates both Krishna's earthly parentage and
His divine nature. It's used in the invocation "oṁ namo bhagavate vāsudevāya"
(I offer my obeisances unto the Personality of Godhead, Vāsudeva).
Reference: SB 1.1.1, 1.1.12 Purport, 1.1.19
Category: Names of Krishna
Gender: Male"

Make sure to be especially comprehensive in any context that you find for
the name. Also, make sure to extract ALL names, and DO NOT SKIP ANY, since
you are very, very interested in learning all of the names according to the
criteria. Lastly, make sure to present the name as the name itself in the
correct Sanskrit declension, the nominative case.`

// continuationPrompt asks for additional names from the same batch,
// replayed on top of the first exchange.
const continuationPrompt = `The above is the first response. Now, please continue to find more names
from the same source text, %s, that you have not already found.
Make sure to follow the same criteria as before, and DO NOT repeat any names
that you have already found in the first response. Format your output exactly
as before, with the name first, followed by the definition, context,
references, category, and gender.`

// BuildFirstPrompt builds the round-1 user prompt: the batch text followed
// by the task instructions, with the exclusion block inlined when any
// previously found names exist.
func BuildFirstPrompt(batchText, sourceRef string, exclusions []string) string {
	command := fmt.Sprintf(taskPrompt, sourceRef, BuildExclusionText(exclusions))
	return fmt.Sprintf("%s \n\n %s", batchText, command)
}

// BuildContinuationPrompt builds the round-2 follow-up instruction.
func BuildContinuationPrompt(sourceRef string) string {
	return fmt.Sprintf(continuationPrompt, sourceRef)
}

// BuildExclusionText enumerates already-found names as an explicit
// prohibition. Empty when there is nothing to exclude.
func BuildExclusionText(exclusions []string) string {
	if len(exclusions) == 0 {
		return ""
	}
	return fmt.Sprintf(`IMPORTANT: DO NOT include any of the following names that have already been found:

%s

Please find ONLY NEW names that are not in the above list.`, strings.Join(exclusions, ", "))
}

// SourceRef formats the canonical chapter reference passed to the model.
func SourceRef(canto, chapter int) string {
	return fmt.Sprintf("Srimad Bhagavatam, Canto %d, Chapter %d", canto, chapter)
}
