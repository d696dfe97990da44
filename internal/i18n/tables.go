package i18n

var german = map[string]string{
	"title":            "Dial-A-Charmer",
	"alarm_title":      "Wecker",
	"subtitle":         "Hörer abheben und Wählen",
	"home":             "Home",
	"alarms":           "Wecker",
	"pb":               "Telefonbuch",
	"config":           "Konfiguration",
	"setup":            "Setup",
	"help":             "Hilfe / Manual",
	"save":             "Speichern",
	"saving":           "Speichern...",
	"book_not_loaded":  "Telefonbuch nicht geladen, Seite neu öffnen",
	"saved":            "Gespeichert",
	"active":           "Aktiv",
	"fade":             "Ansteigend",
	"message":          "Mit Nachricht",
	"snooze":           "Schlummerzeit",
	"no_alarm":         "Kein Wecker",
	"loading_alarms":   "Wecker werden geladen...",
	"datetime":         "Datum & Zeit",
	"timezone":         "Zeitzone",
	"tz_save":          "Zone speichern",
	"volume":           "Lautstärke",
	"volume_base":      "Basis-Lautsprecher",
	"volume_handset":   "Hörer",
	"timer_alarm":      "Timer-Wecker",
	"ringtone":         "Klingelton",
	"lamp":             "Lampe",
	"lamp_enabled":     "Lampe aktiv",
	"lamp_day":         "Helligkeit Tag",
	"lamp_night":       "Helligkeit Nacht",
	"lamp_day_start":   "Tag ab",
	"lamp_night_start": "Nacht ab",
	"wifi":             "WLAN",
	"no_net":           "Kein Netz",
	"scan":             "Suchen",
	"scanning":         "WLAN-Netze werden gesucht... (Bitte warten)",
	"scan_error":       "Suchfehler",
	"scan_retry":       "Panel neu starten, um erneut zu suchen",
	"select_network":   "Lokales Netzwerk wählen:",
	"connect_to":       "Verbinden mit",
	"password":         "Passwort",
	"connecting":       "Speichern und Verbinden...",
	"connected":        "Gespeichert! Das Gerät verbindet sich jetzt mit",
	"connected_hint":   "Der Access Point verschwindet. Wechseln Sie zurück ins Netz und öffnen Sie",
	"network_error":    "Netzwerkfehler",
	"name":             "Name",
	"unassigned":       "frei",
	"day":              "Tag",
	"day_0":            "Sonntag",
	"day_1":            "Montag",
	"day_2":            "Dienstag",
	"day_3":            "Mittwoch",
	"day_4":            "Donnerstag",
	"day_5":            "Freitag",
	"day_6":            "Samstag",
	"slot_time":        "Zeitauskunft",
	"slot_menu":        "Sprachmenue",
	"slot_toggle":      "Wecker schalten",
	"slot_skip":        "Naechsten Wecker ueberspringen",
	"slot_reboot":      "System Neustart",
	"save_failed":      "Speichern fehlgeschlagen",
	"loading":          "Verbinde mit dem Gerät...",
	"startup_failed":   "Gerät nicht erreichbar",
	"language":         "Sprache",
	"device_time":      "Gerätezeit",
	"logs":             "Systemprotokoll",
	"on":               "An",
	"off":              "Aus",
	"number":           "Nummer",
	"no_networks":      "Keine Netze gefunden",
	"min":              "Min.",
}

var english = map[string]string{
	"title":            "Dial-A-Charmer",
	"alarm_title":      "Alarms",
	"subtitle":         "Lift receiver and dial",
	"home":             "Home",
	"alarms":           "Alarms",
	"pb":               "Phonebook",
	"config":           "Configuration",
	"setup":            "Setup",
	"help":             "Help / Manual",
	"save":             "Save",
	"saving":           "Saving...",
	"book_not_loaded":  "Phonebook not loaded, reopen the page",
	"saved":            "Saved",
	"active":           "Active",
	"fade":             "Rising Volume",
	"message":          "With Message",
	"snooze":           "Snooze Time",
	"no_alarm":         "No alarm",
	"loading_alarms":   "Loading alarms...",
	"datetime":         "Date & Time",
	"timezone":         "Timezone",
	"tz_save":          "Save Zone",
	"volume":           "Volume",
	"volume_base":      "Base Speaker",
	"volume_handset":   "Handset",
	"timer_alarm":      "Timer Alarm",
	"ringtone":         "Ringtone",
	"lamp":             "Lamp",
	"lamp_enabled":     "Lamp enabled",
	"lamp_day":         "Day brightness",
	"lamp_night":       "Night brightness",
	"lamp_day_start":   "Day starts",
	"lamp_night_start": "Night starts",
	"wifi":             "WiFi Network",
	"no_net":           "No Net",
	"scan":             "Scan",
	"scanning":         "Scanning WiFi Networks... (Please wait)",
	"scan_error":       "Scan Error",
	"scan_retry":       "Restart the panel to scan again",
	"select_network":   "Select your local network:",
	"connect_to":       "Connect to",
	"password":         "Password",
	"connecting":       "Saving and Connecting...",
	"connected":        "Saved! The device is now connecting to",
	"connected_hint":   "The Access Point will disappear. Switch back to your network and open",
	"network_error":    "Network Error",
	"name":             "Name",
	"unassigned":       "unassigned",
	"day":              "Day",
	"day_0":            "Sunday",
	"day_1":            "Monday",
	"day_2":            "Tuesday",
	"day_3":            "Wednesday",
	"day_4":            "Thursday",
	"day_5":            "Friday",
	"day_6":            "Saturday",
	"slot_time":        "Time Announcement",
	"slot_menu":        "Voice Admin Menu",
	"slot_toggle":      "Toggle Alarms",
	"slot_skip":        "Skip Next Alarm",
	"slot_reboot":      "System Reboot",
	"save_failed":      "Save failed",
	"loading":          "Connecting to device...",
	"startup_failed":   "Device unreachable",
	"language":         "Language",
	"device_time":      "Device time",
	"logs":             "System Log",
	"on":               "On",
	"off":              "Off",
	"number":           "Number",
	"no_networks":      "No networks found",
	"min":              "min",
}
