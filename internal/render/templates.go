package render

import "html/template"

var (
	contactEmailTmpl     = template.Must(template.New("contact_email").Parse(contactEmailSource))
	bathroomEmailTmpl    = template.Must(template.New("bathroom_email").Parse(bathroomEmailSource))
	bathroomDocumentTmpl = template.Must(template.New("bathroom_document").Parse(bathroomDocumentSource))
)

const testModeBanner = `{{if .Ctx.TestMode}}<div style="background: #fef3cd; padding: 10px; margin-bottom: 20px; border: 1px solid #f59e0b; border-radius: 5px;"><strong>TEST MODUS:</strong> Diese E-Mail wurde nur simuliert</div>{{end}}`

const contactEmailSource = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .header { background-color: #1e3a8a; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .section { margin-bottom: 20px; padding: 15px; border-left: 4px solid #1e3a8a; background-color: #f8fafc; }
        .urgent { background-color: #fee2e2; border-left-color: #dc2626; }
        .footer { background-color: #f1f5f9; padding: 15px; text-align: center; font-size: 12px; color: #64748b; }
        .info-grid { display: grid; grid-template-columns: 150px 1fr; gap: 10px; }
        .info-label { font-weight: bold; }
    </style>
</head>
<body>
    ` + testModeBanner + `

    <div class="header">
        <h1>Neue Kontaktanfrage</h1>
        <p>{{.Ctx.Company.Name}}</p>
        {{if .Submission.Urgent}}<p style="font-size: 18px; font-weight: bold;">DRINGENDE ANFRAGE</p>{{end}}
    </div>

    <div class="content">
        <div class="section{{if .Submission.Urgent}} urgent{{end}}">
            <h3>Kontaktdaten</h3>
            <div class="info-grid">
                <span class="info-label">Name:</span>
                <span>{{.Submission.FullName}}</span>

                <span class="info-label">E-Mail:</span>
                <span><a href="mailto:{{.Submission.Email}}">{{.Submission.Email}}</a></span>

                {{if .Submission.Phone}}
                <span class="info-label">Telefon:</span>
                <span><a href="tel:{{.Submission.Phone}}">{{.Submission.Phone}}</a></span>
                {{end}}

                <span class="info-label">Service:</span>
                <span>{{.ServiceLabel}}</span>

                <span class="info-label">Betreff:</span>
                <span>{{.Submission.Subject}}</span>
            </div>
        </div>

        <div class="section">
            <h3>Nachricht</h3>
            <p style="white-space: pre-line;">{{.Submission.Message}}</p>
        </div>

        <div class="section">
            <h3>System-Informationen</h3>
            <div class="info-grid">
                <span class="info-label">Referenz-ID:</span>
                <span>{{.ReferenceID}}</span>

                <span class="info-label">Eingegangen am:</span>
                <span>{{.Timestamp}}</span>

                <span class="info-label">Dringend:</span>
                <span>{{if .Submission.Urgent}}Ja - Antwort binnen 2 Stunden gewünscht{{else}}Nein{{end}}</span>

                {{if .Ctx.TestMode}}
                <span class="info-label">Test-Modus:</span>
                <span style="color: #f59e0b; font-weight: bold;">AKTIV - Keine echte E-Mail</span>
                {{end}}
            </div>
        </div>
    </div>

    <div class="footer">
        <p>Diese E-Mail wurde {{if .Ctx.TestMode}}simuliert{{else}}automatisch{{end}} über das Kontaktformular der {{.Ctx.Company.Name}} Website generiert.</p>
        <p>Bitte antworten Sie direkt an: <a href="mailto:{{.Submission.Email}}">{{.Submission.Email}}</a></p>
    </div>
</body>
</html>
`

const bathroomEmailSource = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .header { background-color: #1e3a8a; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .section { margin-bottom: 20px; padding: 15px; border-left: 4px solid #1e3a8a; background-color: #f8fafc; }
        .footer { background-color: #f1f5f9; padding: 15px; text-align: center; font-size: 12px; color: #64748b; }
        .info-grid { display: grid; grid-template-columns: 150px 1fr; gap: 10px; }
        .info-label { font-weight: bold; }
        .equipment-list { margin: 10px 0; }
        .equipment-item { padding: 5px 0; border-bottom: 1px solid #e2e8f0; }
    </style>
</head>
<body>
    ` + testModeBanner + `

    <div class="header">
        <h1>Neue Badkonfigurator Anfrage</h1>
        <p>{{.Ctx.Company.Name}}</p>
        {{if .Ctx.TestMode}}<p style="font-size: 14px; opacity: 0.9;">Test-Modus aktiv</p>{{end}}
    </div>

    <div class="content">
        <div class="section">
            <h3>Kontaktdaten</h3>
            <div class="info-grid">
                <span class="info-label">Name:</span>
                <span>{{.CustomerName}}</span>

                <span class="info-label">E-Mail:</span>
                <span><a href="mailto:{{.Config.ContactData.Email}}">{{.Config.ContactData.Email}}</a></span>

                <span class="info-label">Telefon:</span>
                <span><a href="tel:{{.Config.ContactData.Phone}}">{{.Config.ContactData.Phone}}</a></span>
            </div>
        </div>

        <div class="section">
            <h3>Badkonfiguration</h3>
            <div class="info-grid">
                <span class="info-label">Badgröße:</span>
                <span>{{.SizeLabel}} m²</span>

                <span class="info-label">Qualitätsstufe:</span>
                <span>{{.QualityName}}</span>
            </div>

            {{if .Equipment}}
            <h4>Gewählte Ausstattung:</h4>
            <div class="equipment-list">
                {{range .Equipment}}<div class="equipment-item">• {{.Name}}{{if ne .Option "Standard"}}: {{.Option}}{{end}}</div>{{end}}
            </div>
            {{end}}
        </div>

        <div class="section">
            <h3>Fliesen &amp; Heizung</h3>
            <div class="info-grid">
                <span class="info-label">Bodenfliesen:</span>
                <span>{{.FloorTiles}}</span>

                <span class="info-label">Wandfliesen:</span>
                <span>{{.WallTiles}}</span>

                <span class="info-label">Heizung:</span>
                <span>{{.Heating}}</span>
            </div>
        </div>

        {{if .AdditionalInfos}}
        <div class="section">
            <h3>Gewünschte Informationen</h3>
            <ul>
                {{range .AdditionalInfos}}<li>{{.}}</li>{{end}}
            </ul>
        </div>
        {{end}}

        {{if .Config.Comments}}
        <div class="section">
            <h3>Anmerkungen</h3>
            <p style="white-space: pre-line;">{{.Config.Comments}}</p>
        </div>
        {{end}}

        <div class="section">
            <h3>System-Informationen</h3>
            <div class="info-grid">
                <span class="info-label">Referenz-ID:</span>
                <span>{{.ReferenceID}}</span>

                <span class="info-label">Eingegangen am:</span>
                <span>{{.Timestamp}}</span>

                <span class="info-label">System:</span>
                <span>{{.Ctx.Company.Name}} Badkonfigurator v1.0</span>

                {{if .Ctx.TestMode}}
                <span class="info-label">Test-Modus:</span>
                <span style="color: #f59e0b; font-weight: bold;">AKTIV - Keine echte E-Mail</span>
                {{end}}
            </div>
        </div>
    </div>

    <div class="footer">
        <p>Diese E-Mail wurde {{if .Ctx.TestMode}}simuliert{{else}}automatisch{{end}} über den Badkonfigurator der {{.Ctx.Company.Name}} Website generiert.</p>
        <p>Bitte antworten Sie direkt an: <a href="mailto:{{.Config.ContactData.Email}}">{{.Config.ContactData.Email}}</a></p>
        <p>PDF-Konfiguration {{if .Ctx.TestMode}}(simuliert){{else}}im Anhang{{end}} | {{.Ctx.Company.Name}} | {{.Ctx.Company.Address}} | {{.Ctx.Company.City}}</p>
    </div>
</body>
</html>
`

const bathroomDocumentSource = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Badkonfigurator - {{.Config.ContactData.FirstName}} {{.Config.ContactData.LastName}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; background-color: #fff; }
        .container { max-width: 800px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #1e3a8a 0%, #3b82f6 100%); color: white; padding: 30px; text-align: center; border-radius: 10px; margin-bottom: 30px; }
        .header h1 { font-size: 32px; margin-bottom: 10px; font-weight: 300; }
        .header .subtitle { font-size: 16px; opacity: 0.9; }
        .section { background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 8px; padding: 25px; margin-bottom: 25px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
        .section-title { color: #1e3a8a; font-size: 20px; font-weight: 600; margin-bottom: 15px; padding-bottom: 8px; border-bottom: 2px solid #e2e8f0; }
        .info-grid { display: grid; grid-template-columns: 200px 1fr; gap: 15px; margin-bottom: 15px; }
        .info-label { font-weight: 600; color: #4a5568; }
        .info-value { color: #2d3748; }
        .equipment-list { margin-top: 15px; }
        .equipment-item { background: white; border: 1px solid #e2e8f0; border-radius: 6px; padding: 15px; margin-bottom: 10px; }
        .equipment-name { font-weight: 600; color: #2d3748; }
        .equipment-option { color: #4a5568; font-size: 14px; }
        .tiles-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; margin-top: 15px; }
        .tile-category { background: white; padding: 15px; border-radius: 6px; border: 1px solid #e2e8f0; }
        .tile-category h4 { color: #1e3a8a; margin-bottom: 10px; font-size: 16px; }
        .tile-list { color: #4a5568; font-size: 14px; line-height: 1.5; }
        .comments-section { background: white; padding: 20px; border-radius: 6px; border: 1px solid #e2e8f0; margin-top: 15px; }
        .additional-info-list { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; margin-top: 15px; }
        .info-item { background: white; padding: 15px; border-radius: 6px; border: 1px solid #e2e8f0; text-align: center; }
        .footer { background: #f1f5f9; padding: 20px; text-align: center; border-radius: 8px; margin-top: 30px; border: 1px solid #e2e8f0; }
        .footer-info { color: #64748b; font-size: 12px; line-height: 1.4; }
        .company-logo { font-size: 24px; font-weight: bold; }
        .page-break { page-break-before: always; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="company-logo">{{.Ctx.Company.Name}}</div>
            <h1>Ihr Badkonfigurator</h1>
            <div class="subtitle">Individuelle Badplanung - Erstellt am {{.Timestamp}}</div>
        </div>

        <div class="section">
            <h2 class="section-title">Kontaktdaten</h2>
            <div class="info-grid">
                <div class="info-label">Name:</div>
                <div class="info-value">{{.CustomerName}}</div>

                <div class="info-label">E-Mail:</div>
                <div class="info-value">{{.Config.ContactData.Email}}</div>

                <div class="info-label">Telefon:</div>
                <div class="info-value">{{.Config.ContactData.Phone}}</div>
            </div>
        </div>

        <div class="section">
            <h2 class="section-title">Badkonfiguration</h2>
            <div class="info-grid">
                <div class="info-label">Badezimmergröße:</div>
                <div class="info-value">{{.SizeLabel}} m²</div>

                <div class="info-label">Qualitätsstufe:</div>
                <div class="info-value">{{.QualityName}}</div>
            </div>

            {{if .QualityDescription}}
            <div style="margin-top: 15px; padding: 15px; background: white; border-radius: 6px; border: 1px solid #e2e8f0;">
                <strong>Qualitätsbeschreibung:</strong><br>
                {{.QualityDescription}}
            </div>
            {{end}}

            {{if .Equipment}}
            <h3 style="margin-top: 25px; margin-bottom: 15px; color: #1e3a8a;">Gewählte Ausstattung:</h3>
            <div class="equipment-list">
                {{range .Equipment}}
                <div class="equipment-item">
                    <div class="equipment-name">{{.Name}}</div>
                    <div class="equipment-option">{{.Option}}</div>
                </div>
                {{end}}
            </div>
            {{else}}
            <div style="margin-top: 15px; padding: 15px; background: #fef3cd; border-radius: 6px; border: 1px solid #f59e0b;">
                <strong>Hinweis:</strong> Keine spezifische Ausstattung ausgewählt. Wir beraten Sie gerne zu den passenden Optionen.
            </div>
            {{end}}
        </div>

        <div class="section">
            <h2 class="section-title">Fliesen &amp; Heizung</h2>
            <div class="tiles-grid">
                <div class="tile-category">
                    <h4>Bodenfliesen</h4>
                    <div class="tile-list">
                        {{if .FloorTiles}}{{range $i, $t := .FloorTiles}}{{if $i}}<br>{{end}}{{$t}}{{end}}{{else}}<em>Keine spezifischen Bodenfliesen ausgewählt</em>{{end}}
                    </div>
                </div>
                <div class="tile-category">
                    <h4>Wandfliesen</h4>
                    <div class="tile-list">
                        {{if .WallTiles}}{{range $i, $t := .WallTiles}}{{if $i}}<br>{{end}}{{$t}}{{end}}{{else}}<em>Keine spezifischen Wandfliesen ausgewählt</em>{{end}}
                    </div>
                </div>
            </div>

            <div style="margin-top: 20px;">
                <h4 style="color: #1e3a8a; margin-bottom: 10px;">Heizung</h4>
                <div class="tile-list">
                    {{if .Heating}}{{range $i, $t := .Heating}}{{if $i}}<br>{{end}}{{$t}}{{end}}{{else}}<em>Keine spezifische Heizung ausgewählt</em>{{end}}
                </div>
            </div>
        </div>

        {{if .AdditionalInfos}}
        <div class="section">
            <h2 class="section-title">Gewünschte Informationen</h2>
            <div class="additional-info-list">
                {{range .AdditionalInfos}}
                <div class="info-item">&#10003; {{.}}</div>
                {{end}}
            </div>
        </div>
        {{end}}

        {{if .Config.Comments}}
        <div class="section">
            <h2 class="section-title">Anmerkungen</h2>
            <div class="comments-section" style="white-space: pre-line;">{{.Config.Comments}}</div>
        </div>
        {{end}}

        <div class="section">
            <h2 class="section-title">Nächste Schritte</h2>
            <div style="background: white; padding: 20px; border-radius: 6px; border: 1px solid #e2e8f0;">
                <h4 style="color: #1e3a8a; margin-bottom: 15px;">Wir melden uns bei Ihnen!</h4>
                <p style="margin-bottom: 15px;">
                    Basierend auf Ihrer Konfiguration erstellen wir Ihnen ein individuelles Angebot.
                    Unser Expertenteam wird sich innerhalb der nächsten 24 Stunden bei Ihnen melden.
                </p>
                <div class="info-grid" style="margin-top: 15px;">
                    <div class="info-label">Kontakt:</div>
                    <div class="info-value">{{.Ctx.Company.Phone}}</div>

                    <div class="info-label">E-Mail:</div>
                    <div class="info-value">{{.Ctx.Company.Email}}</div>

                    <div class="info-label">Adresse:</div>
                    <div class="info-value">{{.Ctx.Company.Address}}<br>{{.Ctx.Company.City}}</div>
                </div>
            </div>
        </div>

        <div class="footer">
            <div class="footer-info">
                <strong>{{.Ctx.Company.Name}}</strong><br>
                {{.Ctx.Company.Address}} | {{.Ctx.Company.City}}<br>
                Tel: {{.Ctx.Company.Phone}} | E-Mail: {{.Ctx.Company.Email}}<br><br>
                <em>Dieses Dokument wurde automatisch generiert am {{.Timestamp}}</em><br>
                <em>Referenz-ID: {{.ReferenceID}}</em>
            </div>
        </div>
    </div>
</body>
</html>
`
